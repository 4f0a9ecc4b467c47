package api

import (
	"net/http"
	"strconv"
	"strings"

	"compareaid/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// User-facing backend messages.
const (
	MsgBlankQuery     = "Please enter a search term"
	MsgSearchFailed   = "Search failed. Please try again."
	MsgProductMissing = "Product query required"
)

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Products    []models.ProductOutput `json:"products"`
	Cached      bool                   `json:"cached"`
	LastUpdated *string                `json:"last_updated"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Backend serves the product search endpoints over the catalog in models.
type Backend struct {
	results *ResultCache
}

// NewBackend wires the handlers to a result cache.
func NewBackend(results *ResultCache) *Backend {
	return &Backend{results: results}
}

// Results exposes the result cache so a catalog refresh can purge it.
func (b *Backend) Results() *ResultCache {
	return b.results
}

func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(ErrorResponse{Error: message})
}

// SearchProducts runs a catalog search for query, serving repeats from the
// result cache. Products come back cheapest first.
func (b *Backend) SearchProducts(query string) (SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResponse{}, serr.New("search query is required")
	}

	snap, cached := b.results.Get(query)
	if !cached {
		products, err := models.SearchProducts(query, models.DefaultSearchLimit)
		if err != nil {
			return SearchResponse{}, serr.Wrap(err, "catalog search failed")
		}
		snap = models.NewSearchSnapshot(query, products)
		b.results.Put(snap)
	}

	resp := SearchResponse{Products: snap.Products, Cached: cached}
	if resp.Products == nil {
		resp.Products = []models.ProductOutput{}
	}
	if snap.LastUpdated != "" {
		resp.LastUpdated = &snap.LastUpdated
	}
	return resp, nil
}

// Search handles GET /search?q=
// Blank queries and failures answer 200 with an "error" field, which the
// search page shows verbatim.
func (b *Backend) Search(ctx rweb.Context) error {
	query := strings.TrimSpace(ctx.Request().QueryParam("q"))
	if query == "" {
		return ctx.WriteJSON(ErrorResponse{Error: MsgBlankQuery})
	}

	resp, err := b.SearchProducts(query)
	if err != nil {
		logger.LogErr(err, "search error", "query", query)
		return ctx.WriteJSON(ErrorResponse{Error: MsgSearchFailed})
	}
	return ctx.WriteJSON(resp)
}

// PricesResponse is the body of GET /api/prices.
type PricesResponse struct {
	Products []models.ProductOutput `json:"products"`
	Count    int                    `json:"count"`
	Query    string                 `json:"query"`
}

// Prices handles GET /api/prices?product=&limit=
func (b *Backend) Prices(ctx rweb.Context) error {
	query := strings.TrimSpace(ctx.Request().QueryParam("product"))
	if query == "" {
		return writeError(ctx, http.StatusBadRequest, MsgProductMissing)
	}
	limit := parseLimit(ctx.Request().QueryParam("limit"), models.DefaultSearchLimit, models.MaxSearchLimit)

	products, err := models.SearchProducts(query, limit)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to search products"), "database error", "query", query)
		return writeError(ctx, http.StatusInternalServerError, "Search failed")
	}

	out := PricesResponse{Products: toOutputs(products), Query: query}
	out.Count = len(out.Products)
	return ctx.WriteJSON(out)
}

// Trending handles GET /api/trending?limit=
func (b *Backend) Trending(ctx rweb.Context) error {
	limit := parseLimit(ctx.Request().QueryParam("limit"), models.DefaultTrendingLimit, models.MaxTrendingLimit)

	products, err := models.TrendingProducts(limit)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to list trending products"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "Failed to fetch trending products")
	}

	outs := toOutputs(products)
	return ctx.WriteJSON(map[string]any{"products": outs, "count": len(outs)})
}

// Stores handles GET /api/stores
func (b *Backend) Stores(ctx rweb.Context) error {
	stores, err := models.ListActiveStores()
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to list stores"), "database error")
		return writeError(ctx, http.StatusInternalServerError, "Failed to fetch stores")
	}

	outs := make([]models.StoreOutput, 0, len(stores))
	for i := range stores {
		outs = append(outs, stores[i].ToOutput())
	}
	return ctx.WriteJSON(map[string]any{"stores": outs})
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health handles GET /api/health
func (b *Backend) Health(ctx rweb.Context) error {
	if err := models.Ping(); err != nil {
		logger.LogErr(err, "health check failed")
		ctx.SetStatus(http.StatusServiceUnavailable)
		return ctx.WriteJSON(HealthResponse{Status: "unhealthy", Service: "ComparAid API"})
	}
	return ctx.WriteJSON(HealthResponse{Status: "healthy", Service: "ComparAid API"})
}

// parseLimit reads a limit parameter; missing or invalid values get def,
// values above hi are capped.
func parseLimit(raw string, def, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	if n > hi {
		return hi
	}
	return n
}

func toOutputs(products []models.CatalogProduct) []models.ProductOutput {
	outs := make([]models.ProductOutput, 0, len(products))
	for i := range products {
		outs = append(outs, products[i].ToOutput())
	}
	return outs
}

package models

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// Catalog refresh
//
// A ListingSource reports what a store sells for a search term. The refresh
// walks every category for every scraper-enabled store and upserts the
// listings, recording price history on change.
// ============================================================================

// Listing is a product as reported by a store.
type Listing struct {
	Name     string
	Price    float64
	Unit     string
	URL      string
	ImageURL string
}

// ListingSource looks up a store's listings for a search term.
type ListingSource interface {
	Listings(ctx context.Context, store Store, term string) ([]Listing, error)
}

// Categories are the search terms walked on every refresh.
var Categories = []string{
	"milk", "bread", "eggs", "butter", "cheese", "yogurt",
	"chicken", "beef", "pork", "fish", "bacon", "sausages",
	"apples", "bananas", "oranges", "grapes", "strawberries",
	"potatoes", "onions", "carrots", "tomatoes", "lettuce",
	"pasta", "rice", "cereal", "flour", "sugar", "oil",
	"coffee", "tea", "juice", "water", "wine", "beer",
	"soap", "shampoo", "toothpaste", "detergent", "tissues",
}

// RefreshStats summarizes one refresh pass.
type RefreshStats struct {
	Stores       int
	Listings     int
	Inserted     int
	PriceChanged int
	Failures     int
}

// storeConcurrency bounds how many stores are queried at once.
const storeConcurrency = 3

// RefreshCatalog runs one pass over terms (Categories when nil).
// A failing store or term is logged and skipped; only context
// cancellation and store lookup errors abort the pass.
func RefreshCatalog(ctx context.Context, src ListingSource, terms []string) (RefreshStats, error) {
	if terms == nil {
		terms = Categories
	}
	stores, err := ListScrapableStores()
	if err != nil {
		return RefreshStats{}, err
	}

	var (
		mu    sync.Mutex
		stats = RefreshStats{Stores: len(stores)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(storeConcurrency)

	for _, store := range stores {
		g.Go(func() error {
			for _, term := range terms {
				if err := gctx.Err(); err != nil {
					return err
				}
				listings, err := src.Listings(gctx, store, term)
				if err != nil {
					logger.LogErr(err, "failed to fetch listings", "store", store.Name, "term", term)
					mu.Lock()
					stats.Failures++
					mu.Unlock()
					continue
				}

				for _, l := range listings {
					outcome, err := UpsertListing(store, term, l, time.Now())

					mu.Lock()
					stats.Listings++
					switch {
					case err != nil:
						stats.Failures++
					case outcome == ListingInserted:
						stats.Inserted++
					case outcome == ListingPriceChanged:
						stats.PriceChanged++
					}
					mu.Unlock()

					if err != nil {
						logger.LogErr(err, "failed to save listing", "store", store.Name, "product", l.Name)
					}
				}
			}
			return MarkStoreScraped(store.GUID, time.Now())
		})
	}

	if err := g.Wait(); err != nil {
		return stats, serr.Wrap(err, "catalog refresh aborted")
	}
	logger.Info("Catalog refresh completed", "stores", stats.Stores, "listings", stats.Listings,
		"inserted", stats.Inserted, "price_changed", stats.PriceChanged, "failures", stats.Failures)
	return stats, nil
}

// RunRefreshWorker refreshes the catalog immediately, then every interval
// until ctx is done. onDone, when set, runs after each completed pass.
func RunRefreshWorker(ctx context.Context, src ListingSource, interval time.Duration, onDone func(RefreshStats)) error {
	if interval <= 0 {
		return serr.New("refresh interval must be positive")
	}
	logger.Info("Catalog refresh worker started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats, err := RefreshCatalog(ctx, src, nil)
		if err != nil && ctx.Err() == nil {
			logger.LogErr(err, "catalog refresh failed")
		}
		if err == nil && onDone != nil {
			onDone(stats)
		}

		select {
		case <-ctx.Done():
			logger.Info("Catalog refresh worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// ----------------------------------------------------------------------------
// Static listings
// ----------------------------------------------------------------------------

type seedItem struct {
	name  string
	price float64
	unit  string
}

type storeCatalog struct {
	items    map[string][]seedItem
	fallback float64 // price of the generic "<Store> <Term>" listing
	url      func(base, name string) string
	image    string
}

// StaticSource serves fixed listings per store, so the demo backend works
// without contacting any retailer.
type StaticSource struct {
	catalogs map[string]storeCatalog
}

// NewStaticSource returns the built-in listings.
func NewStaticSource() *StaticSource {
	slugURL := func(prefix string) func(base, name string) string {
		return func(base, name string) string {
			return base + prefix + strings.ReplaceAll(strings.ToLower(name), " ", "-")
		}
	}

	return &StaticSource{catalogs: map[string]storeCatalog{
		"Tesco": {
			items:    tescoItems,
			fallback: 2.49,
			url:      func(base, _ string) string { return base + "/groceries/" },
			image:    "/assets/images/products/placeholder.jpg",
		},
		"SuperValu": {
			items:    superValuItems,
			fallback: 2.61,
			url:      func(base, _ string) string { return base + "/sm/delivery/rsid/5550/" },
			image:    "/images/products/placeholder.jpg",
		},
		"Dunnes": {
			items:    dunnesItems,
			fallback: 2.35,
			url: func(_, name string) string {
				return "https://www.dunnesstoresgrocery.com/sm/delivery/rsid/258/results?q=" + url.QueryEscape(name)
			},
			image: "/assets/products/placeholder.jpg",
		},
		"Lidl": {
			items:    lidlItems,
			fallback: 2.15,
			url:      slugURL("/products/"),
			image:    "/media/products/placeholder.jpg",
		},
		"Aldi": {
			items:    aldiItems,
			fallback: 2.05,
			url:      slugURL("/groceries/"),
			image:    "/content/products/placeholder.jpg",
		},
	}}
}

// Listings implements ListingSource.
func (s *StaticSource) Listings(ctx context.Context, store Store, term string) ([]Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cat, ok := s.catalogs[store.Name]
	if !ok {
		return nil, serr.New("no listings for store " + store.Name)
	}

	base := store.Website.String
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}
	items, ok := cat.items[term]
	if !ok {
		items = []seedItem{{name: store.Name + " " + titleCase(term), price: cat.fallback, unit: DefaultUnit}}
	}

	listings := make([]Listing, 0, len(items))
	for _, it := range items {
		listings = append(listings, Listing{
			Name:     it.name,
			Price:    it.price,
			Unit:     it.unit,
			URL:      cat.url(base, it.name),
			ImageURL: base + cat.image,
		})
	}
	return listings, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func smallRange(store string, milk, milk2, organic, whole, lactose float64, bread [2]seedItem, eggs float64) map[string][]seedItem {
	return map[string][]seedItem{
		"milk": {
			{store + " Fresh Milk 1L", milk, "1L"},
			{store + " Fresh Milk 2L", milk2, "2L"},
			{store + " Organic Milk 1L", organic, "1L"},
			{store + " Skimmed Milk 1L", milk, "1L"},
			{store + " Whole Milk 500ml", whole, "500ml"},
			{store + " Lactose Free Milk 1L", lactose, "1L"},
		},
		"bread": bread[:],
		"eggs":  {{store + " Free Range Eggs 12pk", eggs, "12 pack"}},
	}
}

var (
	dunnesItems = smallRange("Dunnes", 1.19, 2.04, 1.79, 0.71, 1.85,
		[2]seedItem{{"Dunnes White Sliced Pan", 1.05, "800g"}, {"Dunnes Wholemeal Bread", 1.25, "800g"}}, 3.15)
	lidlItems = smallRange("Lidl", 1.07, 1.82, 1.65, 0.64, 1.71,
		[2]seedItem{{"Lidl White Bread", 0.94, "800g"}, {"Lidl Wholemeal Bread", 1.15, "800g"}}, 2.95)
	aldiItems = smallRange("Aldi", 1.03, 1.75, 1.59, 0.62, 1.65,
		[2]seedItem{{"Aldi White Bread", 0.90, "800g"}, {"Aldi Wholemeal Bread", 1.09, "800g"}}, 2.89)
)

var tescoItems = map[string][]seedItem{
	"milk": {
		{"Tesco Fresh Milk 1L", 1.25, "1L"},
		{"Tesco Fresh Milk 2L", 2.15, "2L"},
		{"Tesco Organic Milk 1L", 1.85, "1L"},
		{"Tesco Skimmed Milk 1L", 1.25, "1L"},
		{"Tesco Whole Milk 500ml", 0.75, "500ml"},
		{"Tesco Lactose Free Milk 1L", 1.95, "1L"},
	},
	"bread":    {{"Tesco White Sliced Pan", 1.10, "800g"}, {"Tesco Wholemeal Bread", 1.45, "800g"}},
	"eggs":     {{"Tesco Free Range Eggs 12pk", 3.25, "12 pack"}, {"Tesco Large Eggs 6pk", 1.85, "6 pack"}},
	"butter":   {{"Tesco Irish Butter 500g", 2.85, "500g"}},
	"chicken":  {{"Tesco Chicken Breast 500g", 4.25, "500g"}},
	"bananas":  {{"Tesco Bananas 1kg", 1.49, "1kg"}},
	"apples":   {{"Tesco Apples 1kg", 2.29, "1kg"}},
	"cheese":   {{"Tesco Cheddar Cheese 200g", 2.50, "200g"}},
	"yogurt":   {{"Tesco Natural Yogurt 500g", 1.75, "500g"}},
	"pasta":    {{"Tesco Spaghetti 500g", 0.85, "500g"}},
	"rice":     {{"Tesco Basmati Rice 1kg", 2.15, "1kg"}},
	"tomatoes": {{"Tesco Cherry Tomatoes 250g", 1.95, "250g"}},
	"onions":   {{"Tesco White Onions 1kg", 1.25, "1kg"}},
	"potatoes": {{"Tesco Rooster Potatoes 2kg", 2.49, "2kg"}},
	"carrots":  {{"Tesco Carrots 1kg", 0.89, "1kg"}},
	"beef":     {{"Tesco Beef Mince 500g", 4.50, "500g"}},
	"pork":     {{"Tesco Pork Chops 500g", 3.75, "500g"}},
	"fish":     {{"Tesco Salmon Fillet 200g", 3.99, "200g"}},
	"cereal":   {{"Tesco Cornflakes 500g", 2.25, "500g"}},
	"coffee":   {{"Tesco Instant Coffee 200g", 4.50, "200g"}},
	"tea":      {{"Tesco Tea Bags 80pk", 2.75, "80 pack"}},
	"sugar":    {{"Tesco Granulated Sugar 1kg", 1.15, "1kg"}},
	"flour":    {{"Tesco Plain Flour 1.5kg", 1.35, "1.5kg"}},
	"oil":      {{"Tesco Sunflower Oil 1L", 1.89, "1L"}},
	"oranges":  {{"Tesco Oranges 1kg", 1.99, "1kg"}},
	"lettuce":  {{"Tesco Iceberg Lettuce", 0.89, "each"}},
}

var superValuItems = map[string][]seedItem{
	"milk": {
		{"SuperValu Fresh Milk 1L", 1.31, "1L"},
		{"SuperValu Fresh Milk 2L", 2.26, "2L"},
		{"SuperValu Organic Milk 1L", 1.95, "1L"},
		{"SuperValu Skimmed Milk 1L", 1.31, "1L"},
		{"SuperValu Whole Milk 500ml", 0.79, "500ml"},
		{"SuperValu Lactose Free Milk 1L", 2.05, "1L"},
	},
	"bread":    {{"SuperValu White Bread", 1.15, "800g"}, {"SuperValu Brown Bread", 1.35, "800g"}},
	"eggs":     {{"SuperValu Free Range Eggs 12pk", 3.45, "12 pack"}},
	"butter":   {{"SuperValu Irish Butter 500g", 2.99, "500g"}},
	"chicken":  {{"SuperValu Chicken Breast 500g", 4.46, "500g"}},
	"bananas":  {{"SuperValu Bananas 1kg", 1.56, "1kg"}},
	"apples":   {{"SuperValu Apples 1kg", 2.40, "1kg"}},
	"cheese":   {{"SuperValu Cheddar Cheese 200g", 2.63, "200g"}},
	"yogurt":   {{"SuperValu Natural Yogurt 500g", 1.84, "500g"}},
	"pasta":    {{"SuperValu Spaghetti 500g", 0.89, "500g"}},
	"rice":     {{"SuperValu Basmati Rice 1kg", 2.26, "1kg"}},
	"tomatoes": {{"SuperValu Cherry Tomatoes 250g", 2.05, "250g"}},
	"onions":   {{"SuperValu White Onions 1kg", 1.31, "1kg"}},
	"potatoes": {{"SuperValu Rooster Potatoes 2kg", 2.61, "2kg"}},
	"carrots":  {{"SuperValu Carrots 1kg", 0.93, "1kg"}},
	"beef":     {{"SuperValu Beef Mince 500g", 4.73, "500g"}},
	"pork":     {{"SuperValu Pork Chops 500g", 3.94, "500g"}},
	"fish":     {{"SuperValu Salmon Fillet 200g", 4.19, "200g"}},
	"cereal":   {{"SuperValu Cornflakes 500g", 2.36, "500g"}},
	"coffee":   {{"SuperValu Instant Coffee 200g", 4.73, "200g"}},
	"tea":      {{"SuperValu Tea Bags 80pk", 2.89, "80 pack"}},
	"sugar":    {{"SuperValu Granulated Sugar 1kg", 1.21, "1kg"}},
	"flour":    {{"SuperValu Plain Flour 1.5kg", 1.42, "1.5kg"}},
	"oil":      {{"SuperValu Sunflower Oil 1L", 1.98, "1L"}},
	"oranges":  {{"SuperValu Oranges 1kg", 2.09, "1kg"}},
	"lettuce":  {{"SuperValu Iceberg Lettuce", 0.93, "each"}},
}

package catalog

import (
	"html"
	"strconv"
	"strings"

	"compareaid/models"
	"compareaid/web/pages/comps"
	"compareaid/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// StoresPage lists every store with its product count and average price.
type StoresPage struct {
	shared.Page
	Stores []models.StoreStats
}

func NewStoresPage(stats []models.StoreStats) StoresPage {
	return StoresPage{
		Page:   shared.Page{Title: "Stores - ComparAid"},
		Stores: stats,
	}
}

// Render generates the complete HTML document
func (p StoresPage) Render() string {
	return render(p.Page, comps.Heading{
		Title:    "Stores",
		Subtitle: "Every store we compare, with how many products we track there.",
	}, storeGrid{stats: p.Stores})
}

type storeGrid struct {
	stats []models.StoreStats
}

func (g storeGrid) Render(b *element.Builder) any {
	if len(g.stats) == 0 {
		b.PClass("empty-message").T("No stores yet.")
		return nil
	}

	b.Div("class", "results-grid", "id", "storesGrid").R(
		element.ForEach(g.stats, func(s models.StoreStats) {
			b.Div("class", "product-card store-card").R(
				b.SpanClass("store-badge "+html.EscapeString(strings.ToLower(s.Store.Name))).T(html.EscapeString(s.Store.Name)),
				b.DivClass("product-name").T(strconv.Itoa(s.ProductCount)+" products"),
				b.Div("class", "price-row").R(
					b.SpanClass("product-price").T(euro(s.AvgPrice)),
					b.SpanClass("product-unit").T("average"),
				),
				b.Wrap(func() {
					if s.Store.Website.Valid {
						b.A("class", "view-product-btn", "href", html.EscapeString(s.Store.Website.String),
							"target", "_blank", "rel", "noopener noreferrer").T("Visit "+html.EscapeString(s.Store.Name)+" →")
					}
				}),
			)
		}),
	)
	return nil
}

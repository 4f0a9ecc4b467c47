package catalog

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"compareaid/models"
	"compareaid/web/pages/comps"
	"compareaid/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// TrendsPage shows the price spread of the popular search terms.
type TrendsPage struct {
	shared.Page
	Trends []models.TermTrend
}

func NewTrendsPage(trends []models.TermTrend) TrendsPage {
	return TrendsPage{
		Page:   shared.Page{Title: "Price Trends - ComparAid"},
		Trends: trends,
	}
}

// Render generates the complete HTML document
func (p TrendsPage) Render() string {
	return render(p.Page, comps.Heading{
		Title:    "Price Trends",
		Subtitle: "Cheapest, dearest and average prices for popular groceries.",
	}, trendGrid{trends: p.Trends})
}

type trendGrid struct {
	trends []models.TermTrend
}

func (g trendGrid) Render(b *element.Builder) any {
	if len(g.trends) == 0 {
		b.PClass("empty-message").T("No price data yet. Check back after the next catalog refresh.")
		return nil
	}

	b.Div("class", "results-grid", "id", "trendsGrid").R(
		element.ForEach(g.trends, func(tr models.TermTrend) {
			b.Div("class", "product-card trend-card").R(
				b.DivClass("product-name").T(html.EscapeString(tr.Term)),
				b.Div("class", "price-row").R(
					b.SpanClass("product-price").T(euro(tr.AvgPrice)),
					b.SpanClass("product-unit").T("average"),
				),
				b.DivClass("product-unit").T("From "+euro(tr.MinPrice)+" to "+euro(tr.MaxPrice)),
				b.DivClass("product-unit").T("Across "+strconv.Itoa(tr.Stores)+" "+storesWord(tr.Stores)),
				b.A("class", "view-product-btn", "href", html.EscapeString("/?q="+url.QueryEscape(strings.ToLower(tr.Term)))).T("Compare "+html.EscapeString(tr.Term)+" →"),
			)
		}),
	)
	return nil
}

func storesWord(n int) string {
	if n == 1 {
		return "store"
	}
	return "stores"
}

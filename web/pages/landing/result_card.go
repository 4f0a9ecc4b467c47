package landing

import (
	"fmt"
	"html"
	"strings"
	"time"

	"compareaid/searchui"

	"github.com/rohanthewiz/element"
)

// ResultCard renders one product in the results grid.
// Every backend-supplied string is escaped before it reaches the markup.
type ResultCard struct {
	Card searchui.Card
}

// Render implements element.Component
func (rc ResultCard) Render(b *element.Builder) (x any) {
	c := rc.Card
	class := "product-card"
	if c.Cheapest {
		class += " cheapest"
	}

	b.Div("class", class, "style", cssDelay(c.Delay)).R(
		b.DivClass("product-header").R(
			b.DivClass("product-name").T(html.EscapeString(c.Name)),
			b.DivClass("product-unit").T(html.EscapeString(c.UnitLabel())),
		),
		b.SpanClass("store-badge "+html.EscapeString(c.StoreClass())).T(html.EscapeString(c.Store)),
		b.DivClass("price-row").R(
			b.SpanClass("product-price").T(html.EscapeString(c.PriceLabel())),
			b.Wrap(func() {
				if c.Cheapest {
					b.SpanClass("best-price-badge").T(searchui.BestPriceBadge)
				}
			}),
		),
		b.A("class", "view-product-btn", "href", safeHref(c.StoreURL),
			"target", "_blank", "rel", "noopener noreferrer").T("View at "+html.EscapeString(c.Store)+" →"),
	)
	return
}

// cssDelay is an inline animation-delay declaration.
func cssDelay(d time.Duration) string {
	return fmt.Sprintf("animation-delay: %dms", d.Milliseconds())
}

// safeHref lets through only http(s) links; anything else becomes "#".
func safeHref(raw string) string {
	u := strings.TrimSpace(raw)
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "#"
	}
	return html.EscapeString(u)
}

// Package catalog holds the store overview and price trend pages.
package catalog

import (
	"fmt"
	"html"

	"compareaid/web/pages/comps"
	"compareaid/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// render wraps content in the site chrome shared with the search page.
func render(p shared.Page, heading comps.Heading, content element.Component) string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		b.Head().R(
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
			b.Title().T(html.EscapeString(p.Title)),
			b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
		),
		b.Body().R(
			element.RenderComponents(b, p.Header()),
			b.Main("class", "main-content").R(
				b.Div("class", "hero").R(
					element.RenderComponents(b, heading),
				),
				element.RenderComponents(b, content),
			),
			element.RenderComponents(b, p.Footer()),
			b.Script("src", "/static/js/app.js?v=1").R(),
		),
	)

	return "<!DOCTYPE html>\n" + b.String()
}

func euro(v float64) string {
	return fmt.Sprintf("€%.2f", v)
}

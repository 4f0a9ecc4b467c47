package landing

import (
	"compareaid/web/pages/comps"
	"compareaid/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Page is the grocery price comparison page: header, hero with the search
// form, the loading/results/error sections and the footer.
type Page struct {
	shared.Page
	Query    string
	Sections Sections
}

// NewPage creates the page for query with the given section state.
func NewPage(query string, sections Sections) Page {
	return Page{
		Page:     shared.Page{Title: "ComparAid - Compare Irish Grocery Prices"},
		Query:    query,
		Sections: sections,
	}
}

// Render generates the complete HTML document
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.renderHead(b),
		p.renderBody(b),
	)

	return "<!DOCTYPE html>\n" + b.String()
}

func (p Page) renderHead(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Meta("name", "htmx-config", "content", `{"scrollIntoViewOnBoost":false}`),
		b.Title().T(p.Title),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
		b.Script("src", "https://unpkg.com/htmx.org@1.9.12").R(),
	)
}

func (p Page) renderBody(b *element.Builder) any {
	return b.Body().R(
		element.RenderComponents(b, p.Header()),

		b.Main("class", "main-content").R(
			b.Div("class", "hero").R(
				element.RenderComponents(b,
					comps.Heading{
						Title:    "Find the best grocery prices in Ireland",
						Subtitle: "Compare prices across Tesco, SuperValu, Dunnes, Lidl and Aldi in one search.",
					},
					SearchBar{Query: p.Query},
				),
			),
			element.RenderComponents(b, p.Sections),
		),

		element.RenderComponents(b, p.Footer()),

		b.Script("src", "/static/js/app.js?v=1").R(),
	)
}

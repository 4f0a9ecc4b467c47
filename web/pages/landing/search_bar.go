package landing

import (
	"html"

	"compareaid/searchui"

	"github.com/rohanthewiz/element"
)

// SearchBar is the search form plus the popular search tags.
//
// Without JavaScript the form is a plain GET to "/". With htmx loaded the
// form asks /ui/search for the sections fragment and swaps it in place.
type SearchBar struct {
	Query string
}

// Render implements element.Component
func (s SearchBar) Render(b *element.Builder) (x any) {
	b.Form("id", "searchForm", "class", "search-form", "action", "/", "method", "get",
		"hx-get", "/ui/search", "hx-target", "#sections", "hx-swap", "outerHTML",
		"hx-indicator", "#loadingSection", "hx-disabled-elt", "#searchBtn").R(
		b.DivClass("search-input-wrapper").R(
			b.SpanClass("search-icon").T("🔍"),
			b.Input("type", "text", "name", "q", "id", "searchInput", "class", "search-input",
				"placeholder", "Search for milk, bread, eggs...", "autocomplete", "off",
				"value", html.EscapeString(s.Query)),
		),
		b.Button("type", "submit", "id", "searchBtn", "class", "btn btn-primary search-btn").T(searchui.LabelIdle),
	)

	b.DivClass("popular-searches").R(
		b.SpanClass("popular-label").T("Popular:"),
		element.ForEach(searchui.PresetTerms, func(term string) {
			b.Button("type", "button", "class", "popular-tag", "data-term", term).T(html.EscapeString(term))
		}),
	)
	return
}

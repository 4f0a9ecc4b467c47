package landing

import (
	"html"

	"compareaid/searchui"

	"github.com/rohanthewiz/element"
)

// Sections is the swappable part of the page: the loading indicator, the
// results and the error message. The #sections wrapper is what /ui/search
// returns and htmx swaps.
type Sections struct {
	Loading     bool
	ShowResults bool
	Results     *searchui.ResultsView
	ShowError   bool
	Message     string
}

func hiddenUnless(visible bool, class string) string {
	if visible {
		return class
	}
	return class + " hidden"
}

// Render implements element.Component
func (s Sections) Render(b *element.Builder) (x any) {
	b.Div("id", "sections", "class", "sections").R(
		b.Div("id", searchui.SectionLoading.ElementID(), "class", hiddenUnless(s.Loading, "loading-section htmx-indicator"),
			"aria-live", "polite").R(
			b.DivClass("spinner").R(),
			b.PClass("loading-text").T("Searching prices across stores..."),
		),
		s.renderResults(b),
		b.Div("id", searchui.SectionError.ElementID(), "class", hiddenUnless(s.ShowError, "error-section"),
			"role", "alert").R(
			b.DivClass("error-icon").T("⚠️"),
			b.P("id", "errorMessage", "class", "error-message").T(html.EscapeString(s.Message)),
		),
	)
	return
}

func (s Sections) renderResults(b *element.Builder) any {
	visible := s.ShowResults && s.Results != nil
	rv := searchui.ResultsView{}
	if s.Results != nil {
		rv = *s.Results
	}

	attrs := []string{"id", searchui.SectionResults.ElementID(), "class", "results-section hidden"}
	if visible {
		attrs = []string{"id", searchui.SectionResults.ElementID(), "class", "results-section fade-in",
			"style", cssDelay(rv.FadeIn)}
	}

	return b.Div(attrs...).R(
		b.DivClass("results-header").R(
			b.Div("id", "resultsTitle", "class", "results-title").T(html.EscapeString(rv.Title)),
			b.P("id", "lastUpdated", "class", "last-updated").R(
				b.Wrap(func() {
					if visible {
						b.T("Last updated: " + html.EscapeString(rv.Updated) + " · ")
						b.SpanClass(cacheClass(rv.Cached)).T(rv.CacheBadge())
					}
				}),
			),
		),
		b.Div("id", "resultsGrid", "class", "results-grid").R(
			element.ForEach(rv.Cards, func(c searchui.Card) {
				element.RenderComponents(b, ResultCard{Card: c})
			}),
		),
	)
}

func cacheClass(cached bool) string {
	if cached {
		return "cache-badge cached"
	}
	return "cache-badge fresh"
}

// HTML renders the sections on their own, for partial page updates.
func (s Sections) HTML() string {
	b := element.NewBuilder()
	element.RenderComponents(b, s)
	return b.String()
}

// Package searchui drives the price search page. It takes a search term,
// asks the search backend for matching products and moves the page between
// its loading, results and error sections through a View.
package searchui

import (
	"fmt"
	"strings"
	"time"
)

// Product is one priced item as returned by the search backend.
type Product struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit,omitempty"`
	Store    string  `json:"store"`
	StoreURL string  `json:"store_url"`
	Price    float64 `json:"price"` // euro
}

// Result is the payload of GET /search.
// A non-empty Error short-circuits everything else.
type Result struct {
	Products    []Product `json:"products"`
	Cached      bool      `json:"cached"`
	LastUpdated string    `json:"last_updated"`
	Error       string    `json:"error,omitempty"`
}

// State is the visible state of the page. Only one of the loading, results
// and error sections is shown at a time.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateResultsShown
	StateErrorShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResultsShown:
		return "results"
	case StateErrorShown:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Section identifies one of the page sections, used as a scroll target.
type Section int

const (
	SectionLoading Section = iota
	SectionResults
	SectionError
)

// ElementID returns the DOM id the web page uses for the section.
func (s Section) ElementID() string {
	switch s {
	case SectionResults:
		return "resultsSection"
	case SectionError:
		return "errorSection"
	default:
		return "loadingSection"
	}
}

// Timings of the cosmetic transitions.
const (
	StaggerStep           = 100 * time.Millisecond // delay between successive card reveals
	FadeInDelay           = 100 * time.Millisecond // results section fade-in
	ScrollDelay           = 100 * time.Millisecond
	HeaderShadowThreshold = 100 // px of vertical scroll before the header gets a shadow
)

// PresetTerms are the quick-select search terms offered next to the form.
var PresetTerms = []string{"milk", "bread", "eggs", "butter", "chicken"}

// User facing messages
const (
	MsgConnectivity = "Unable to fetch prices right now. Please check your connection and try again."
	LabelIdle       = "Compare Prices"
	LabelBusy       = "Searching..."
	BestPriceBadge  = "🏆 Best Price"
	CachedBadge     = "📋 Cached"
	FreshBadge      = "🔄 Fresh"
)

// NoProductsMessage is shown when the backend found nothing for the query.
func NoProductsMessage(query string) string {
	return fmt.Sprintf(`No products found for "%s". Try searching for milk, bread, eggs, or other common groceries.`, query)
}

// NormalizeQuery trims the raw input. An empty result means "do not search".
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}

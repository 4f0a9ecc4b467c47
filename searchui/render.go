package searchui

import (
	"fmt"
	"strings"
	"time"
)

// Card is one product as it appears in the results grid.
type Card struct {
	Product
	Cheapest bool
	Delay    time.Duration // when the card's reveal transition starts
}

// UnitLabel is the unit shown under the name, "each" when the backend sent none.
func (c Card) UnitLabel() string {
	if strings.TrimSpace(c.Unit) == "" {
		return "each"
	}
	return c.Unit
}

// StoreClass is the lower-cased store name, used as a styling hook.
func (c Card) StoreClass() string {
	return strings.ToLower(c.Store)
}

// PriceLabel formats the price in euro with two decimals.
func (c Card) PriceLabel() string {
	return fmt.Sprintf("€%.2f", c.Price)
}

// ResultsView is everything needed to paint the results section.
type ResultsView struct {
	Query   string
	Title   string
	Updated string // humanized last_updated
	Cached  bool
	Cards   []Card
	FadeIn  time.Duration
}

// CacheBadge is the cached/fresh indicator text.
func (rv ResultsView) CacheBadge() string {
	if rv.Cached {
		return CachedBadge
	}
	return FreshBadge
}

// CheapestCount reports how many cards carry the best price flag.
func (rv ResultsView) CheapestCount() int {
	n := 0
	for _, c := range rv.Cards {
		if c.Cheapest {
			n++
		}
	}
	return n
}

// MinPrice returns the lowest price in products. ok is false for an empty slice.
func MinPrice(products []Product) (lowest float64, ok bool) {
	for i, p := range products {
		if i == 0 || p.Price < lowest {
			lowest = p.Price
		}
	}
	return lowest, len(products) > 0
}

// StaggerDelays returns the reveal delay of each of n cards: 0, 100ms, 200ms...
func StaggerDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = time.Duration(i) * StaggerStep
	}
	return delays
}

// ResultsTitle is the header above the grid.
func ResultsTitle(query string, count int) string {
	return fmt.Sprintf(`Results for "%s" (%d found)`, query, count)
}

// BuildResults turns a backend result into the results section model.
// Every product priced at the minimum is flagged cheapest, not just the first.
// Card order is the backend's order.
func BuildResults(query string, res Result, now time.Time, loc *time.Location) ResultsView {
	minPrice, _ := MinPrice(res.Products)
	delays := StaggerDelays(len(res.Products))

	cards := make([]Card, len(res.Products))
	for i, p := range res.Products {
		cards[i] = Card{
			Product:  p,
			Cheapest: p.Price == minPrice,
			Delay:    delays[i],
		}
	}

	return ResultsView{
		Query:   query,
		Title:   ResultsTitle(query, len(res.Products)),
		Updated: FormatTimestamp(res.LastUpdated, now, loc),
		Cached:  res.Cached,
		Cards:   cards,
		FadeIn:  FadeInDelay,
	}
}

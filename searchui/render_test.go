package searchui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildResultsCheapestFlags(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   []bool
	}{
		{"tie on the minimum", []float64{2.50, 1.99, 1.99, 3.00}, []bool{false, true, true, false}},
		{"single item", []float64{4.25}, []bool{true}},
		{"all equal", []float64{1, 1, 1}, []bool{true, true, true}},
		{"free item", []float64{0, 0.5}, []bool{true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := make([]Product, len(tt.prices))
			for i, p := range tt.prices {
				products[i] = Product{Name: "p", Store: "Tesco", Price: p}
			}

			rv := BuildResults("milk", Result{Products: products}, fixedNow, time.UTC)

			got := make([]bool, len(rv.Cards))
			for i, c := range rv.Cards {
				got[i] = c.Cheapest
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildResultsHeaderAndFreshness(t *testing.T) {
	res := Result{
		Products:    []Product{{Name: "Tesco Fresh Milk 1L", Unit: "1L", Store: "Tesco", Price: 1.25}},
		Cached:      true,
		LastUpdated: fixedNow.Add(-5 * time.Minute).Format(time.RFC3339),
	}

	rv := BuildResults("milk", res, fixedNow, time.UTC)

	assert.Equal(t, `Results for "milk" (1 found)`, rv.Title)
	assert.Equal(t, "5 mins ago", rv.Updated)
	assert.Equal(t, CachedBadge, rv.CacheBadge())
	assert.Equal(t, FadeInDelay, rv.FadeIn)

	rv.Cached = false
	assert.Equal(t, FreshBadge, rv.CacheBadge())
}

func TestStaggerDelays(t *testing.T) {
	assert.Empty(t, StaggerDelays(0))
	assert.Equal(t,
		[]time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond},
		StaggerDelays(4))

	rv := BuildResults("x", Result{Products: make([]Product, 3)}, fixedNow, time.UTC)
	for i, c := range rv.Cards {
		assert.Equal(t, time.Duration(i)*StaggerStep, c.Delay)
	}
}

func TestCardLabels(t *testing.T) {
	c := Card{Product: Product{Name: "Eggs", Store: "SuperValu", Price: 3.4}}

	assert.Equal(t, "each", c.UnitLabel())
	assert.Equal(t, "supervalu", c.StoreClass())
	assert.Equal(t, "€3.40", c.PriceLabel())

	c.Unit = "12 pack"
	assert.Equal(t, "12 pack", c.UnitLabel())
}

func TestMinPrice(t *testing.T) {
	_, ok := MinPrice(nil)
	assert.False(t, ok)

	lowest, ok := MinPrice([]Product{{Price: 3}, {Price: 0.62}, {Price: 1.03}})
	assert.True(t, ok)
	assert.Equal(t, 0.62, lowest)
}

func TestNoProductsMessage(t *testing.T) {
	assert.Equal(t,
		`No products found for "kale". Try searching for milk, bread, eggs, or other common groceries.`,
		NoProductsMessage("kale"))
}

func TestClientSearchURL(t *testing.T) {
	c := NewClient("http://localhost:8765/", 0)
	assert.Equal(t, "http://localhost:8765/search?q=brown%20bread%20%26%20butter", c.SearchURL("brown bread & butter"))
	assert.Equal(t, "http://localhost:8765/search?q=whole%20milk", c.SearchURL("whole milk"))
	assert.Equal(t, "http://localhost:8765/search?q=1%2B1%20eggs%3F%23", c.SearchURL("1+1 eggs?#"))
}

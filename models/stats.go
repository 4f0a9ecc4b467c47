package models

import (
	"database/sql"
	"math"
	"strings"

	"github.com/rohanthewiz/serr"
)

// StoreStats summarizes a store's active listings.
type StoreStats struct {
	Store        Store
	ProductCount int
	AvgPrice     float64 // rounded to cents; 0 when the store has no listings
}

// TermTrend is the price spread for one search term across stores.
type TermTrend struct {
	Term     string
	MinPrice float64
	MaxPrice float64
	AvgPrice float64 // rounded to cents
	Stores   int     // distinct stores listing the term
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// StoreStatistics returns every store, ordered by name, with its active
// product count and average price.
func StoreStatistics() ([]StoreStats, error) {
	stores, err := listStores(`SELECT ` + storeColumns + ` FROM stores ORDER BY name`)
	if err != nil {
		return nil, err
	}

	out := make([]StoreStats, 0, len(stores))
	for _, s := range stores {
		var (
			count int64
			avg   sql.NullFloat64
		)
		row := QueryRowFromCache(`SELECT count(*), avg(price) FROM products
			WHERE store_guid = ? AND is_active = true`, s.GUID)
		if err := row.Scan(&count, &avg); err != nil {
			return nil, serr.Wrap(err, "failed to compute store stats", "store", s.Name)
		}
		out = append(out, StoreStats{Store: s, ProductCount: int(count), AvgPrice: roundCents(avg.Float64)})
	}
	return out, nil
}

// PriceTrends returns the spread of active prices for each term, in the
// order given. Terms with no listings are left out.
func PriceTrends(terms []string) ([]TermTrend, error) {
	out := make([]TermTrend, 0, len(terms))
	for _, term := range terms {
		q := strings.ToLower(strings.TrimSpace(term))
		if q == "" {
			continue
		}

		var (
			count       int64
			lo, hi, avg sql.NullFloat64
			stores      int64
		)
		row := QueryRowFromCache(`SELECT count(*), min(price), max(price), avg(price), count(DISTINCT store_guid)
			FROM products WHERE is_active = true AND contains(lower(search_term), ?)`, q)
		if err := row.Scan(&count, &lo, &hi, &avg, &stores); err != nil {
			return nil, serr.Wrap(err, "failed to compute price trend", "term", q)
		}
		if count == 0 {
			continue
		}

		out = append(out, TermTrend{
			Term:     titleCase(q),
			MinPrice: lo.Float64,
			MaxPrice: hi.Float64,
			AvgPrice: roundCents(avg.Float64),
			Stores:   int(stores),
		})
	}
	return out, nil
}

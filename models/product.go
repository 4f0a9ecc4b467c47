package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
)

// CatalogProduct is one store's listing for a product.
type CatalogProduct struct {
	ID          int64          `json:"id"`
	GUID        string         `json:"guid"`
	Name        string         `json:"name"`
	StoreGUID   string         `json:"store_guid"`
	StoreName   string         `json:"store"` // joined from stores
	Price       float64        `json:"price"`
	Unit        sql.NullString `json:"unit,omitempty"`
	ImageURL    sql.NullString `json:"image_url,omitempty"`
	StoreURL    sql.NullString `json:"store_url,omitempty"`
	SearchTerm  string         `json:"search_term"`
	IsActive    bool           `json:"is_active"`
	LastUpdated time.Time      `json:"last_updated"`
}

// ProductOutput is the wire shape of a product. The search UI reads
// name, unit, store, store_url and price from it.
type ProductOutput struct {
	ID          int64   `json:"id" msgpack:"id"`
	Name        string  `json:"name" msgpack:"name"`
	Store       string  `json:"store" msgpack:"store"`
	Price       float64 `json:"price" msgpack:"price"`
	Unit        string  `json:"unit" msgpack:"unit"`
	ImageURL    *string `json:"image_url" msgpack:"image_url"`
	StoreURL    *string `json:"store_url" msgpack:"store_url"`
	LastUpdated string  `json:"last_updated" msgpack:"last_updated"`
}

// DefaultUnit is reported for listings without a unit.
const DefaultUnit = "each"

// TimestampLayout formats catalog times on the wire.
const TimestampLayout = time.RFC3339

// ToOutput converts a CatalogProduct for API responses
func (p *CatalogProduct) ToOutput() ProductOutput {
	out := ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Store:       p.StoreName,
		Price:       p.Price,
		Unit:        DefaultUnit,
		LastUpdated: p.LastUpdated.UTC().Format(TimestampLayout),
	}
	if p.Unit.Valid && p.Unit.String != "" {
		out.Unit = p.Unit.String
	}
	if p.ImageURL.Valid {
		out.ImageURL = &p.ImageURL.String
	}
	if p.StoreURL.Valid {
		out.StoreURL = &p.StoreURL.String
	}
	return out
}

// Search and trending limits.
const (
	DefaultSearchLimit   = 50
	MaxSearchLimit       = 100
	DefaultTrendingLimit = 10
	MaxTrendingLimit     = 20
)

const productSelect = `SELECT p.id, p.guid, p.name, p.store_guid, s.name, p.price, p.unit, p.image_url,
	p.store_url, p.search_term, p.is_active, p.last_updated
	FROM products p JOIN stores s ON s.guid = p.store_guid`

// SearchProducts returns active products whose search term or name
// contains query (case-insensitive), cheapest first.
func SearchProducts(query string, limit int) ([]CatalogProduct, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, serr.New("search query is required")
	}
	limit = clampLimit(limit, DefaultSearchLimit, MaxSearchLimit)

	return listProducts(productSelect+`
		WHERE p.is_active = true
		  AND (contains(lower(p.search_term), ?) OR contains(lower(p.name), ?))
		ORDER BY p.price ASC, p.name ASC
		LIMIT ?`, q, q, limit)
}

// TrendingProducts returns the most recently updated active products.
func TrendingProducts(limit int) ([]CatalogProduct, error) {
	limit = clampLimit(limit, DefaultTrendingLimit, MaxTrendingLimit)
	return listProducts(productSelect+`
		WHERE p.is_active = true
		ORDER BY p.last_updated DESC, p.price ASC
		LIMIT ?`, limit)
}

// GetProduct finds a listing by name within a store. Returns nil, nil when absent.
func GetProduct(storeGUID, name string) (*CatalogProduct, error) {
	row := QueryRowFromCache(productSelect+` WHERE p.store_guid = ? AND p.name = ?`, storeGUID, name)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get product", "name", name)
	}
	return p, nil
}

// UpsertOutcome tells what UpsertListing did.
type UpsertOutcome int

const (
	ListingInserted UpsertOutcome = iota
	ListingPriceChanged
	ListingUnchanged
)

// UpsertListing saves a listing for store under searchTerm. A new product
// and every price change get a price history row.
func UpsertListing(store Store, searchTerm string, l Listing, at time.Time) (UpsertOutcome, error) {
	if l.Name == "" {
		return ListingUnchanged, serr.New("listing name is required")
	}
	if l.Price < 0 {
		return ListingUnchanged, serr.New("listing price cannot be negative")
	}
	at = at.UTC()

	existing, err := GetProduct(store.GUID, l.Name)
	if err != nil {
		return ListingUnchanged, err
	}

	tx, err := BeginDualTx()
	if err != nil {
		return ListingUnchanged, err
	}
	defer tx.Rollback()

	outcome := ListingUnchanged
	if existing == nil {
		productGUID := uuid.NewString()
		err = tx.Exec(`INSERT INTO products
			(guid, name, store_guid, price, unit, image_url, store_url, search_term, is_active, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, true, ?)`,
			productGUID, l.Name, store.GUID, l.Price, nullString(l.Unit), nullString(l.ImageURL),
			nullString(l.URL), strings.ToLower(searchTerm), at)
		if err != nil {
			return ListingUnchanged, serr.Wrap(err, "failed to insert product", "name", l.Name)
		}
		if err := recordPrice(tx, productGUID, l.Price, at); err != nil {
			return ListingUnchanged, err
		}
		outcome = ListingInserted
	} else {
		err = tx.Exec(`UPDATE products SET price = ?, store_url = ?, is_active = true, last_updated = ?
			WHERE guid = ?`, l.Price, nullString(l.URL), at, existing.GUID)
		if err != nil {
			return ListingUnchanged, serr.Wrap(err, "failed to update product", "name", l.Name)
		}
		if existing.Price != l.Price {
			if err := recordPrice(tx, existing.GUID, l.Price, at); err != nil {
				return ListingUnchanged, err
			}
			outcome = ListingPriceChanged
		}
	}

	if err := tx.Commit(); err != nil {
		return ListingUnchanged, err
	}
	return outcome, nil
}

func listProducts(query string, args ...any) ([]CatalogProduct, error) {
	rows, err := ReadFromCache(query, args...)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query products")
	}
	defer rows.Close()

	var products []CatalogProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, serr.Wrap(err, "failed to scan product")
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProduct(r rowScanner) (*CatalogProduct, error) {
	var p CatalogProduct
	err := r.Scan(&p.ID, &p.GUID, &p.Name, &p.StoreGUID, &p.StoreName, &p.Price, &p.Unit,
		&p.ImageURL, &p.StoreURL, &p.SearchTerm, &p.IsActive, &p.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func clampLimit(limit, def, hi int) int {
	if limit <= 0 {
		return def
	}
	if limit > hi {
		return hi
	}
	return limit
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package models

import (
	"database/sql"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// migrateDB runs all migrations on a single database
func migrateDB(db *sql.DB) error {
	// Sequences for auto-incrementing IDs in DuckDB
	sequences := []string{
		"CREATE SEQUENCE IF NOT EXISTS stores_id_seq START 1",
		"CREATE SEQUENCE IF NOT EXISTS products_id_seq START 1",
		"CREATE SEQUENCE IF NOT EXISTS price_history_id_seq START 1",
	}

	for _, seqSQL := range sequences {
		if _, err := db.Exec(seqSQL); err != nil {
			logger.LogErr(err, "failed to create sequence", "sql", seqSQL)
		}
	}

	storesTableSQL := `
	CREATE TABLE IF NOT EXISTS stores (
		id INTEGER PRIMARY KEY DEFAULT nextval('stores_id_seq'),
		guid VARCHAR(40) UNIQUE NOT NULL,
		name VARCHAR(50) UNIQUE NOT NULL,
		website VARCHAR(200),
		logo_url VARCHAR(500),
		is_active BOOLEAN DEFAULT true,
		scraper_enabled BOOLEAN DEFAULT true,
		last_scraped TIMESTAMP
	)`

	if _, err := db.Exec(storesTableSQL); err != nil {
		return serr.Wrap(err, "failed to create stores table")
	}

	// Products are unique per (name, store); the refresh worker upserts on that pair
	productsTableSQL := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY DEFAULT nextval('products_id_seq'),
		guid VARCHAR(40) UNIQUE NOT NULL,
		name VARCHAR(200) NOT NULL,
		store_guid VARCHAR(40) NOT NULL,
		price DOUBLE NOT NULL,
		unit VARCHAR(50),
		image_url VARCHAR(500),
		store_url VARCHAR(500),
		search_term VARCHAR(100) NOT NULL,
		is_active BOOLEAN DEFAULT true,
		last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (name, store_guid)
	)`

	if _, err := db.Exec(productsTableSQL); err != nil {
		return serr.Wrap(err, "failed to create products table")
	}

	priceHistoryTableSQL := `
	CREATE TABLE IF NOT EXISTS price_history (
		id INTEGER PRIMARY KEY DEFAULT nextval('price_history_id_seq'),
		guid VARCHAR(40) UNIQUE NOT NULL,
		product_guid VARCHAR(40) NOT NULL,
		price DOUBLE NOT NULL,
		recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := db.Exec(priceHistoryTableSQL); err != nil {
		return serr.Wrap(err, "failed to create price_history table")
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_search_term ON products(search_term)",
		"CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history(product_guid)",
		"CREATE INDEX IF NOT EXISTS idx_price_history_recorded ON price_history(recorded_at)",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			logger.LogErr(err, "failed to create index", "sql", indexSQL)
		}
	}

	logger.Debug("Database migration completed")
	return nil
}

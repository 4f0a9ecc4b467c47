package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Store is a grocery chain whose prices are tracked.
type Store struct {
	ID             int64          `json:"id"`
	GUID           string         `json:"guid"`
	Name           string         `json:"name"`
	Website        sql.NullString `json:"website,omitempty"`
	LogoURL        sql.NullString `json:"logo_url,omitempty"`
	IsActive       bool           `json:"is_active"`
	ScraperEnabled bool           `json:"scraper_enabled"`
	LastScraped    sql.NullTime   `json:"last_scraped,omitempty"`
}

// StoreOutput is the API shape of a store.
type StoreOutput struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Website  *string `json:"website"`
	LogoURL  *string `json:"logo_url"`
	IsActive bool    `json:"is_active"`
}

// ToOutput converts a Store for API responses
func (s *Store) ToOutput() StoreOutput {
	out := StoreOutput{ID: s.ID, Name: s.Name, IsActive: s.IsActive}
	if s.Website.Valid {
		out.Website = &s.Website.String
	}
	if s.LogoURL.Valid {
		out.LogoURL = &s.LogoURL.String
	}
	return out
}

// KnownStores are the chains seeded on first start.
var KnownStores = []struct {
	Name    string
	Website string
}{
	{"Tesco", "https://www.tesco.ie"},
	{"SuperValu", "https://shop.supervalu.ie"},
	{"Dunnes", "https://www.dunnesstores.com"},
	{"Lidl", "https://www.lidl.ie"},
	{"Aldi", "https://www.aldi.ie"},
}

const storeColumns = `id, guid, name, website, logo_url, is_active, scraper_enabled, last_scraped`

// SeedStores inserts any of KnownStores that are missing. Returns how many were added.
func SeedStores() (int, error) {
	added := 0
	for _, ks := range KnownStores {
		existing, err := GetStoreByName(ks.Name)
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}

		err = WriteThrough(
			`INSERT INTO stores (guid, name, website, is_active, scraper_enabled) VALUES (?, ?, ?, true, true)`,
			uuid.NewString(), ks.Name, ks.Website,
		)
		if err != nil {
			return added, serr.Wrap(err, "failed to seed store", "store", ks.Name)
		}
		added++
	}

	if added > 0 {
		logger.Info("Seeded stores", "count", added)
	}
	return added, nil
}

// GetStoreByName returns nil, nil when no store has that name.
func GetStoreByName(name string) (*Store, error) {
	row := QueryRowFromCache(`SELECT `+storeColumns+` FROM stores WHERE name = ?`, name)

	s, err := scanStore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get store", "name", name)
	}
	return s, nil
}

// ListActiveStores returns active stores ordered by name.
func ListActiveStores() ([]Store, error) {
	return listStores(`SELECT ` + storeColumns + ` FROM stores WHERE is_active = true ORDER BY name`)
}

// ListScrapableStores returns active stores whose listings are refreshed.
func ListScrapableStores() ([]Store, error) {
	return listStores(`SELECT ` + storeColumns + ` FROM stores
		WHERE is_active = true AND scraper_enabled = true ORDER BY name`)
}

// MarkStoreScraped stamps the store's last refresh time.
func MarkStoreScraped(guid string, at time.Time) error {
	if err := WriteThrough(`UPDATE stores SET last_scraped = ? WHERE guid = ?`, at, guid); err != nil {
		return serr.Wrap(err, "failed to mark store scraped", "guid", guid)
	}
	return nil
}

func listStores(query string) ([]Store, error) {
	rows, err := ReadFromCache(query)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list stores")
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, serr.Wrap(err, "failed to scan store")
		}
		stores = append(stores, *s)
	}
	return stores, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStore(r rowScanner) (*Store, error) {
	var s Store
	err := r.Scan(&s.ID, &s.GUID, &s.Name, &s.Website, &s.LogoURL, &s.IsActive, &s.ScraperEnabled, &s.LastScraped)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package models_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"compareaid/models"
)

// setupTestDB initializes a clean catalog database for each test
func setupTestDB(t *testing.T) func() {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test_catalog.ddb")
	if err := models.InitDB(path); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}
	if _, err := models.SeedStores(); err != nil {
		models.CloseDB()
		t.Fatalf("failed to seed stores: %v", err)
	}

	return func() {
		models.CloseDB()
	}
}

func mustStore(t *testing.T, name string) models.Store {
	t.Helper()
	s, err := models.GetStoreByName(name)
	if err != nil {
		t.Fatalf("failed to get store %s: %v", name, err)
	}
	if s == nil {
		t.Fatalf("expected store %s to be seeded", name)
	}
	return *s
}

func TestSeedStoresIsIdempotent(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	added, err := models.SeedStores()
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if added != 0 {
		t.Errorf("expected no stores added on reseed, got %d", added)
	}

	stores, err := models.ListActiveStores()
	if err != nil {
		t.Fatalf("failed to list stores: %v", err)
	}
	if len(stores) != len(models.KnownStores) {
		t.Fatalf("expected %d stores, got %d", len(models.KnownStores), len(stores))
	}
	// Ordered by name
	if stores[0].Name != "Aldi" || stores[len(stores)-1].Name != "Tesco" {
		t.Errorf("unexpected store order: first %s, last %s", stores[0].Name, stores[len(stores)-1].Name)
	}
	if out := stores[0].ToOutput(); out.Website == nil || *out.Website != "https://www.aldi.ie" {
		t.Errorf("expected Aldi website in output, got %v", out.Website)
	}
}

func TestUpsertListingRecordsPriceHistory(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	tesco := mustStore(t, "Tesco")
	listing := models.Listing{Name: "Tesco Fresh Milk 1L", Price: 1.25, Unit: "1L", URL: "https://www.tesco.ie/groceries/"}
	t0 := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	outcome, err := models.UpsertListing(tesco, "milk", listing, t0)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if outcome != models.ListingInserted {
		t.Errorf("expected ListingInserted, got %d", outcome)
	}

	// Same price: no new history row
	outcome, err = models.UpsertListing(tesco, "milk", listing, t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("unchanged upsert failed: %v", err)
	}
	if outcome != models.ListingUnchanged {
		t.Errorf("expected ListingUnchanged, got %d", outcome)
	}

	listing.Price = 1.19
	outcome, err = models.UpsertListing(tesco, "milk", listing, t0.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("price change upsert failed: %v", err)
	}
	if outcome != models.ListingPriceChanged {
		t.Errorf("expected ListingPriceChanged, got %d", outcome)
	}

	p, err := models.GetProduct(tesco.GUID, listing.Name)
	if err != nil || p == nil {
		t.Fatalf("expected product to exist, err=%v", err)
	}
	if p.Price != 1.19 {
		t.Errorf("expected price 1.19, got %v", p.Price)
	}

	history, err := models.GetPriceHistory(p.GUID)
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}
	if history[0].Price != 1.25 || history[1].Price != 1.19 {
		t.Errorf("unexpected history prices: %v, %v", history[0].Price, history[1].Price)
	}
}

func TestUpsertListingValidation(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	aldi := mustStore(t, "Aldi")
	tests := []struct {
		name    string
		listing models.Listing
	}{
		{"missing name", models.Listing{Price: 1}},
		{"negative price", models.Listing{Name: "Aldi Milk", Price: -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := models.UpsertListing(aldi, "milk", tt.listing, time.Now()); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSearchProductsSortedByPrice(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := models.RefreshCatalog(context.Background(), models.NewStaticSource(), []string{"milk", "bread"}); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	products, err := models.SearchProducts("  MILK ", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	// 6 milk listings per store
	if len(products) != 30 {
		t.Fatalf("expected 30 milk products, got %d", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i].Price < products[i-1].Price {
			t.Fatalf("products not sorted by price at %d: %v < %v", i, products[i].Price, products[i-1].Price)
		}
	}
	if products[0].Name != "Aldi Whole Milk 500ml" {
		t.Errorf("expected cheapest to be Aldi Whole Milk 500ml, got %s", products[0].Name)
	}

	out := products[0].ToOutput()
	if out.Store != "Aldi" || out.Unit != "500ml" {
		t.Errorf("unexpected output store/unit: %s/%s", out.Store, out.Unit)
	}
	if out.StoreURL == nil || *out.StoreURL != "https://www.aldi.ie/groceries/aldi-whole-milk-500ml" {
		t.Errorf("unexpected store url: %v", out.StoreURL)
	}
	if _, err := time.Parse(models.TimestampLayout, out.LastUpdated); err != nil {
		t.Errorf("last_updated %q not in wire layout: %v", out.LastUpdated, err)
	}

	limited, err := models.SearchProducts("milk", 5)
	if err != nil {
		t.Fatalf("limited search failed: %v", err)
	}
	if len(limited) != 5 {
		t.Errorf("expected 5 products with limit, got %d", len(limited))
	}

	none, err := models.SearchProducts("caviar", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no caviar, got %d", len(none))
	}

	if _, err := models.SearchProducts("   ", 0); err == nil {
		t.Error("expected error for blank query")
	}
}

func TestSearchMatchesProductName(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := models.RefreshCatalog(context.Background(), models.NewStaticSource(), []string{"bread"}); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	products, err := models.SearchProducts("sliced pan", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected Tesco and Dunnes sliced pans, got %d", len(products))
	}
	for _, p := range products {
		if !strings.Contains(p.Name, "Sliced Pan") {
			t.Errorf("unexpected match %s", p.Name)
		}
	}
}

func TestTrendingProductsLimit(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := models.RefreshCatalog(context.Background(), models.NewStaticSource(), []string{"milk"}); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, models.DefaultTrendingLimit},
		{3, 3},
		{500, models.MaxTrendingLimit},
	}
	for _, tt := range tests {
		got, err := models.TrendingProducts(tt.limit)
		if err != nil {
			t.Fatalf("trending failed: %v", err)
		}
		if len(got) != tt.want {
			t.Errorf("limit %d: expected %d products, got %d", tt.limit, tt.want, len(got))
		}
	}
}

type flakySource struct {
	failStore string
}

func (f flakySource) Listings(ctx context.Context, store models.Store, term string) ([]models.Listing, error) {
	if store.Name == f.failStore {
		return nil, errors.New("store offline")
	}
	return models.NewStaticSource().Listings(ctx, store, term)
}

func TestRefreshCatalogSkipsFailingStore(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	stats, err := models.RefreshCatalog(context.Background(), flakySource{failStore: "Lidl"}, []string{"eggs"})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if stats.Stores != 5 {
		t.Errorf("expected 5 stores, got %d", stats.Stores)
	}
	if stats.Failures != 1 {
		t.Errorf("expected 1 failure, got %d", stats.Failures)
	}
	// Tesco has two egg listings, the others one each, Lidl skipped
	if stats.Inserted != 5 {
		t.Errorf("expected 5 inserted, got %d", stats.Inserted)
	}

	lidl := mustStore(t, "Lidl")
	if !lidl.LastScraped.Valid {
		t.Error("expected Lidl to be marked scraped even after a failed term")
	}

	// Second pass changes nothing
	stats, err = models.RefreshCatalog(context.Background(), flakySource{failStore: "Lidl"}, []string{"eggs"})
	if err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
	if stats.Inserted != 0 || stats.PriceChanged != 0 {
		t.Errorf("expected idempotent refresh, got %+v", stats)
	}
}

func TestRefreshCatalogCancelled(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := models.RefreshCatalog(ctx, models.NewStaticSource(), nil); err == nil {
		t.Error("expected error from cancelled refresh")
	}
}

func TestStaticSourceFallbackListing(t *testing.T) {
	src := models.NewStaticSource()
	store := models.Store{Name: "Aldi"}
	store.Website.String, store.Website.Valid = "https://www.aldi.ie", true

	listings, err := src.Listings(context.Background(), store, "sausages")
	if err != nil {
		t.Fatalf("listings failed: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected one fallback listing, got %d", len(listings))
	}
	if listings[0].Name != "Aldi Sausages" || listings[0].Price != 2.05 {
		t.Errorf("unexpected fallback listing %+v", listings[0])
	}

	if _, err := src.Listings(context.Background(), models.Store{Name: "Spar"}, "milk"); err == nil {
		t.Error("expected error for unknown store")
	}
}

func TestCatalogSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.ddb")
	if err := models.InitDB(path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := models.SeedStores(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := models.RefreshCatalog(context.Background(), models.NewStaticSource(), []string{"butter"}); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	models.CloseDB()

	if err := models.InitDB(path); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer models.CloseDB()

	products, err := models.SearchProducts("butter", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(products) != 5 {
		t.Errorf("expected 5 butter listings after restart, got %d", len(products))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	url := "https://www.lidl.ie/products/lidl-white-bread"
	products := []models.CatalogProduct{
		{ID: 1, Name: "Lidl White Bread", StoreName: "Lidl", Price: 0.94,
			LastUpdated: time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Tesco White Sliced Pan", StoreName: "Tesco", Price: 1.10,
			LastUpdated: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)},
	}
	products[0].StoreURL.String, products[0].StoreURL.Valid = url, true

	snap := models.NewSearchSnapshot("bread", products)
	if snap.LastUpdated != "2026-10-15T08:00:00Z" {
		t.Errorf("expected last_updated from cheapest product, got %s", snap.LastUpdated)
	}

	b, err := models.EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := models.DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(got.Products) != 2 || got.Products[0].Unit != models.DefaultUnit {
		t.Fatalf("unexpected decoded products %+v", got.Products)
	}
	if got.Products[0].StoreURL == nil || *got.Products[0].StoreURL != url {
		t.Errorf("store url lost in round trip: %v", got.Products[0].StoreURL)
	}

	if _, err := models.DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestRunRefreshWorkerReportsEachPass(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	if err := models.RunRefreshWorker(context.Background(), models.NewStaticSource(), 0, nil); err == nil {
		t.Error("expected an error for a zero interval")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var passes []models.RefreshStats
	err := models.RunRefreshWorker(ctx, models.NewStaticSource(), time.Hour, func(stats models.RefreshStats) {
		passes = append(passes, stats)
		cancel()
	})
	if err != nil {
		t.Fatalf("worker returned error: %v", err)
	}
	if len(passes) != 1 {
		t.Fatalf("expected exactly one pass before cancel, got %d", len(passes))
	}
	if passes[0].Inserted == 0 {
		t.Error("expected the first pass to insert listings")
	}
	if passes[0].Stores != len(models.KnownStores) {
		t.Errorf("expected %d stores refreshed, got %d", len(models.KnownStores), passes[0].Stores)
	}
}

package models_test

import (
	"testing"
	"time"

	"compareaid/models"
)

func TestStoreStatistics(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	tesco := mustStore(t, "Tesco")
	for _, l := range []models.Listing{
		{Name: "Tesco Milk 1L", Price: 1.25, Unit: "1L"},
		{Name: "Tesco Milk 2L", Price: 2.10, Unit: "2L"},
		{Name: "Tesco Pan 800g", Price: 1.00, Unit: "800g"},
	} {
		if _, err := models.UpsertListing(tesco, "milk", l, at); err != nil {
			t.Fatalf("upsert %s failed: %v", l.Name, err)
		}
	}

	stats, err := models.StoreStatistics()
	if err != nil {
		t.Fatalf("store statistics failed: %v", err)
	}
	if len(stats) != len(models.KnownStores) {
		t.Fatalf("expected %d stores, got %d", len(models.KnownStores), len(stats))
	}
	if stats[0].Store.Name != "Aldi" {
		t.Errorf("expected stores ordered by name, first was %s", stats[0].Store.Name)
	}

	for _, s := range stats {
		switch s.Store.Name {
		case "Tesco":
			if s.ProductCount != 3 {
				t.Errorf("expected 3 Tesco products, got %d", s.ProductCount)
			}
			// (1.25 + 2.10 + 1.00) / 3 = 1.45
			if s.AvgPrice != 1.45 {
				t.Errorf("expected Tesco average 1.45, got %v", s.AvgPrice)
			}
		default:
			if s.ProductCount != 0 || s.AvgPrice != 0 {
				t.Errorf("expected empty stats for %s, got %d/%v", s.Store.Name, s.ProductCount, s.AvgPrice)
			}
		}
	}
}

func TestPriceTrends(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	tesco := mustStore(t, "Tesco")
	aldi := mustStore(t, "Aldi")

	upsert := func(s models.Store, term, name string, price float64) {
		t.Helper()
		if _, err := models.UpsertListing(s, term, models.Listing{Name: name, Price: price}, at); err != nil {
			t.Fatalf("upsert %s failed: %v", name, err)
		}
	}
	upsert(tesco, "milk", "Tesco Milk 1L", 1.25)
	upsert(tesco, "milk", "Tesco Milk 2L", 2.15)
	upsert(aldi, "milk", "Aldi Milk 1L", 0.99)
	upsert(aldi, "eggs", "Aldi Eggs 6", 1.89)

	trends, err := models.PriceTrends([]string{"milk", "bread", "Eggs", " "})
	if err != nil {
		t.Fatalf("price trends failed: %v", err)
	}
	// bread has no listings and the blank term is skipped
	if len(trends) != 2 {
		t.Fatalf("expected 2 trends, got %d: %+v", len(trends), trends)
	}

	milk := trends[0]
	if milk.Term != "Milk" {
		t.Errorf("expected title-cased term Milk, got %q", milk.Term)
	}
	if milk.MinPrice != 0.99 || milk.MaxPrice != 2.15 {
		t.Errorf("unexpected milk range %v - %v", milk.MinPrice, milk.MaxPrice)
	}
	// (1.25 + 2.15 + 0.99) / 3 = 1.4633...
	if milk.AvgPrice != 1.46 {
		t.Errorf("expected milk average 1.46, got %v", milk.AvgPrice)
	}
	if milk.Stores != 2 {
		t.Errorf("expected milk in 2 stores, got %d", milk.Stores)
	}

	eggs := trends[1]
	if eggs.Term != "Eggs" || eggs.Stores != 1 || eggs.AvgPrice != 1.89 {
		t.Errorf("unexpected eggs trend: %+v", eggs)
	}
}

package api_test

import (
	"testing"
	"time"

	"compareaid/models"
	"compareaid/web/api"
)

func TestResultCacheKeysIgnoreCaseAndSpacing(t *testing.T) {
	rc := api.NewResultCache(4, time.Minute)
	rc.Put(models.SearchSnapshot{
		Query:       "Whole Milk",
		Products:    []models.ProductOutput{{Name: "Lidl Whole Milk 2L", Store: "Lidl", Price: 2.19}},
		LastUpdated: "2026-10-16T09:00:00Z",
	})

	snap, ok := rc.Get("  whole   MILK ")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(snap.Products) != 1 || snap.Products[0].Price != 2.19 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	rc.Purge()
	if _, ok := rc.Get("whole milk"); ok {
		t.Error("expected a miss after purge")
	}
}

func TestResultCacheExpires(t *testing.T) {
	rc := api.NewResultCache(4, 20*time.Millisecond)
	rc.Put(models.SearchSnapshot{Query: "eggs"})
	time.Sleep(60 * time.Millisecond)
	if _, ok := rc.Get("eggs"); ok {
		t.Error("expected the entry to expire")
	}
}

func TestResultCacheEvictsOldest(t *testing.T) {
	rc := api.NewResultCache(2, time.Minute)
	for _, q := range []string{"milk", "bread", "eggs"} {
		rc.Put(models.SearchSnapshot{Query: q})
	}
	if rc.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", rc.Len())
	}
	if _, ok := rc.Get("milk"); ok {
		t.Error("expected the oldest query to be evicted")
	}
}

package web_test

import (
	"context"
	"testing"
	"time"

	"compareaid/searchui"
	"compareaid/web"
)

func noopSearcher() searchui.Searcher {
	return searchui.SearcherFunc(func(ctx context.Context, query string) (*searchui.Result, error) {
		return &searchui.Result{}, nil
	})
}

func TestNewSessionStoreRejectsBadCapacity(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		if _, err := web.NewSessionStore(capacity, noopSearcher(), time.UTC); err == nil {
			t.Errorf("expected error for capacity %d", capacity)
		}
	}
}

func TestNewSessionStoreRequiresSearcher(t *testing.T) {
	if _, err := web.NewSessionStore(8, nil, time.UTC); err == nil {
		t.Error("expected error without a searcher")
	}
}

func TestSessionStoreEvictsOldest(t *testing.T) {
	store, err := web.NewSessionStore(2, noopSearcher(), time.UTC)
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}

	a := store.Fresh("a")
	if got := store.Get("a"); got != a {
		t.Error("expected Get to return the session created by Fresh")
	}
	if store.Fresh("a") == a {
		t.Error("expected Fresh to replace the existing session")
	}

	store.Get("b")
	store.Get("c")
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions after eviction, got %d", store.Len())
	}
}

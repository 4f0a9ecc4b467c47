package api

import (
	"strings"
	"time"

	"compareaid/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rohanthewiz/logger"
)

// ResultCache keeps recent search snapshots, msgpack-encoded, keyed by the
// normalized query. Entries expire after the configured TTL.
type ResultCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewResultCache builds a cache of at most size queries.
func NewResultCache(size int, ttl time.Duration) *ResultCache {
	if size < 1 {
		size = 1
	}
	return &ResultCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Get returns the snapshot for query, if cached and decodable.
func (rc *ResultCache) Get(query string) (models.SearchSnapshot, bool) {
	b, ok := rc.lru.Get(cacheKey(query))
	if !ok {
		return models.SearchSnapshot{}, false
	}
	snap, err := models.DecodeSnapshot(b)
	if err != nil {
		logger.LogErr(err, "dropping undecodable cache entry", "query", query)
		rc.lru.Remove(cacheKey(query))
		return models.SearchSnapshot{}, false
	}
	return snap, true
}

// Put stores a snapshot under its query.
func (rc *ResultCache) Put(snap models.SearchSnapshot) {
	b, err := models.EncodeSnapshot(snap)
	if err != nil {
		logger.LogErr(err, "failed to cache search snapshot", "query", snap.Query)
		return
	}
	rc.lru.Add(cacheKey(snap.Query), b)
}

// Purge drops every entry; called after the catalog changes.
func (rc *ResultCache) Purge() {
	rc.lru.Purge()
}

// Len reports the number of cached queries.
func (rc *ResultCache) Len() int {
	return rc.lru.Len()
}

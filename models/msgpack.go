package models

import (
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// SearchSnapshot is a search response as held in the result cache.
// Snapshots are stored msgpack-encoded.
type SearchSnapshot struct {
	Query       string          `msgpack:"q"`
	Products    []ProductOutput `msgpack:"products"`
	LastUpdated string          `msgpack:"last_updated"`
}

// NewSearchSnapshot builds a snapshot from catalog rows already sorted by price.
// LastUpdated comes from the first (cheapest) product.
func NewSearchSnapshot(query string, products []CatalogProduct) SearchSnapshot {
	snap := SearchSnapshot{Query: query, Products: make([]ProductOutput, 0, len(products))}
	for i := range products {
		snap.Products = append(snap.Products, products[i].ToOutput())
	}
	if len(snap.Products) > 0 {
		snap.LastUpdated = snap.Products[0].LastUpdated
	}
	return snap
}

// EncodeSnapshot marshals a snapshot to msgpack bytes.
func EncodeSnapshot(snap SearchSnapshot) ([]byte, error) {
	b, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, serr.Wrap(err, "failed to msgpack encode search snapshot")
	}
	return b, nil
}

// DecodeSnapshot reverses EncodeSnapshot.
func DecodeSnapshot(b []byte) (SearchSnapshot, error) {
	var snap SearchSnapshot
	if err := msgpack.Unmarshal(b, &snap); err != nil {
		return SearchSnapshot{}, serr.Wrap(err, "failed to unmarshal search snapshot")
	}
	return snap, nil
}

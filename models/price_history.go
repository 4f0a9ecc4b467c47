package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
)

// PriceHistory is one observed price for a product.
type PriceHistory struct {
	ID          int64     `json:"id"`
	GUID        string    `json:"guid"`
	ProductGUID string    `json:"product_guid"`
	Price       float64   `json:"price"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func recordPrice(tx *DualTx, productGUID string, price float64, at time.Time) error {
	err := tx.Exec(`INSERT INTO price_history (guid, product_guid, price, recorded_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), productGUID, price, at)
	if err != nil {
		return serr.Wrap(err, "failed to record price", "product_guid", productGUID)
	}
	return nil
}

// GetPriceHistory returns a product's recorded prices, oldest first.
func GetPriceHistory(productGUID string) ([]PriceHistory, error) {
	rows, err := ReadFromCache(`SELECT id, guid, product_guid, price, recorded_at
		FROM price_history WHERE product_guid = ? ORDER BY recorded_at ASC, id ASC`, productGUID)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query price history")
	}
	defer rows.Close()

	var history []PriceHistory
	for rows.Next() {
		var h PriceHistory
		if err := rows.Scan(&h.ID, &h.GUID, &h.ProductGUID, &h.Price, &h.RecordedAt); err != nil {
			return nil, serr.Wrap(err, "failed to scan price history")
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

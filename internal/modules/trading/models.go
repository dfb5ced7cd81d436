package trading

import "time"

// Trade is the record of an order's simulated fill. Exactly one trade exists
// per executed order (no partial fills); a trade is created at execution time
// and never mutated afterwards.
type Trade struct {
	ID         int64     `json:"tradeId"`
	OrderID    int64     `json:"orderId"`
	Symbol     string    `json:"symbol"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	ExecutedAt time.Time `json:"timestamp"`
}

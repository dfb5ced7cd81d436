package orders

import (
	"encoding/json"
	"time"

	"github.com/quantara/tradesim/internal/domain"
)

// OrderRequest is the raw order intake shape as submitted by callers.
// Quantity is a json.Number so both numeric and quoted-numeric payloads are
// accepted and anything else is rejected as invalid input rather than as a
// decode failure. Price is optional; it is mandatory for LIMIT orders.
type OrderRequest struct {
	Symbol     string      `json:"symbol"`
	Quantity   json.Number `json:"quantity"`
	OrderType  string      `json:"orderType"`
	OrderStyle string      `json:"orderStyle"`
	Price      *float64    `json:"price,omitempty"`
}

// Order is an accepted order. Price is the resolved execution price: the
// caller-supplied price when present and positive, otherwise the instrument's
// last traded price at acceptance time (stored even for MARKET orders, as the
// simulated fill price).
type Order struct {
	ID        int64              `json:"orderId"`
	Symbol    string             `json:"symbol"`
	Side      domain.OrderSide   `json:"type"`
	Style     domain.OrderStyle  `json:"style"`
	Quantity  int64              `json:"quantity"`
	Price     float64            `json:"price"`
	Status    domain.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// PlaceOrderResult is the response to a successful placement
type PlaceOrderResult struct {
	OrderID int64              `json:"orderId"`
	Status  domain.OrderStatus `json:"status"`
}

package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/domain"
)

// Handlers contains HTTP handlers for order intake and lookup
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new orders handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "orders").Logger(),
	}
}

// HandlePlaceOrder accepts an order request
// POST /api/v1/orders
func (h *Handlers) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, domain.ErrInvalidInput)
		return
	}

	order, err := h.service.Place(req)
	if err != nil {
		if domain.Reason(err) == "" {
			h.log.Error().Err(err).Msg("Order placement failed")
			http.Error(w, "Failed to place order", http.StatusInternalServerError)
			return
		}
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, PlaceOrderResult{
		OrderID: order.ID,
		Status:  order.Status,
	})
}

// HandleGetOrder returns an order by id
// GET /api/v1/orders/{orderID}
func (h *Handlers) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		h.writeError(w, domain.ErrInvalidInput)
		return
	}

	order, err := h.service.Get(orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writeError(w, err)
			return
		}
		h.log.Error().Err(err).Int64("order_id", orderID).Msg("Order lookup failed")
		http.Error(w, "Failed to get order", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"orderId":  order.ID,
		"symbol":   order.Symbol,
		"type":     string(order.Side),
		"style":    string(order.Style),
		"quantity": order.Quantity,
		"price":    order.Price,
		"status":   string(order.Status),
	})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps domain rejections to HTTP status codes with a
// machine-readable reason
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, domain.ErrInstrumentNotFound) || errors.Is(err, domain.ErrNotFound) {
		status = http.StatusNotFound
	}

	h.writeJSON(w, status, map[string]string{
		"error":  err.Error(),
		"reason": domain.Reason(err),
	})
}

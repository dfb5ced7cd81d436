package trading

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for trade history
type Handlers struct {
	tradeRepo *TradeRepository
	log       zerolog.Logger
}

// NewHandlers creates a new trading handlers instance
func NewHandlers(tradeRepo *TradeRepository, log zerolog.Logger) *Handlers {
	return &Handlers{
		tradeRepo: tradeRepo,
		log:       log.With().Str("handler", "trading").Logger(),
	}
}

// HandleListTrades returns all trades, any order
// GET /api/v1/trades
func (h *Handlers) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.tradeRepo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list trades")
		http.Error(w, "Failed to list trades", http.StatusInternalServerError)
		return
	}

	response := make([]map[string]interface{}, 0, len(trades))
	for _, t := range trades {
		response = append(response, map[string]interface{}{
			"tradeId":   t.ID,
			"orderId":   t.OrderID,
			"symbol":    t.Symbol,
			"quantity":  t.Quantity,
			"price":     t.Price,
			"timestamp": t.ExecutedAt.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

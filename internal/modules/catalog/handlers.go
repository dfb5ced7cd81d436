package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for the instrument catalog
type Handlers struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandlers creates a new catalog handlers instance
func NewHandlers(repo *Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo: repo,
		log:  log.With().Str("handler", "catalog").Logger(),
	}
}

// HandleListInstruments returns all catalog entries
// GET /api/v1/instruments
func (h *Handlers) HandleListInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list instruments")
		http.Error(w, "Failed to list instruments", http.StatusInternalServerError)
		return
	}

	if instruments == nil {
		instruments = []Instrument{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(instruments)
}

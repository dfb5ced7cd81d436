package orders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/domain"
	"github.com/quantara/tradesim/internal/modules/catalog"
)

// Validator checks structural and semantic validity of incoming order
// requests against the instrument catalog. Validation has no side effects:
// a rejected request leaves no state behind.
type Validator struct {
	catalogRepo *catalog.Repository
	log         zerolog.Logger
}

// NewValidator creates a new order validator
func NewValidator(catalogRepo *catalog.Repository, log zerolog.Logger) *Validator {
	return &Validator{
		catalogRepo: catalogRepo,
		log:         log.With().Str("component", "validator").Logger(),
	}
}

// Validate turns a raw request into an accepted order draft or a rejection.
// Checks run in a fixed order: quantity, side/style, symbol, limit price.
// The draft carries the resolved execution price and status NEW; it has no
// id until the execution service persists it.
func (v *Validator) Validate(req OrderRequest) (*Order, error) {
	quantity, err := strconv.ParseInt(strings.TrimSpace(req.Quantity.String()), 10, 64)
	if err != nil || quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive integer: %w", domain.ErrInvalidInput)
	}

	side, err := domain.OrderSideFromString(req.OrderType)
	if err != nil {
		return nil, err
	}

	style, err := domain.OrderStyleFromString(req.OrderStyle)
	if err != nil {
		return nil, err
	}

	inst, err := v.catalogRepo.GetBySymbol(req.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve instrument: %w", err)
	}
	if inst == nil {
		return nil, fmt.Errorf("unknown symbol %q: %w", req.Symbol, domain.ErrInstrumentNotFound)
	}

	if style == domain.OrderStyleLimit && (req.Price == nil || *req.Price <= 0) {
		return nil, domain.ErrMissingPrice
	}

	// Resolved execution price: supplied price if present and positive,
	// otherwise the instrument's last traded price (market simulation).
	price := inst.LastTradedPrice
	if req.Price != nil && *req.Price > 0 {
		price = *req.Price
	}

	return &Order{
		Symbol:   inst.Symbol,
		Side:     side,
		Style:    style,
		Quantity: quantity,
		Price:    price,
		Status:   domain.OrderStatusNew,
	}, nil
}

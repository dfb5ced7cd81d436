package orders

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/database"
	"github.com/quantara/tradesim/internal/domain"
	"github.com/quantara/tradesim/internal/events"
	"github.com/quantara/tradesim/internal/locking"
	"github.com/quantara/tradesim/internal/modules/portfolio"
	"github.com/quantara/tradesim/internal/modules/trading"
)

// Service is the execution simulator. It drives the order placement unit of
// work: validate, persist as NEW, then either execute immediately (market) or
// park as PLACED (limit). Market execution creates exactly one trade and
// applies it to the portfolio ledger; order, trade and position land in one
// transaction, so either the whole placement succeeds or none of its effects
// are visible.
type Service struct {
	db        *database.DB
	validator *Validator
	orderRepo *Repository
	tradeRepo *trading.TradeRepository
	positions *portfolio.PositionRepository
	locks     *locking.Manager
	events    *events.Manager
	log       zerolog.Logger
}

// NewService creates a new order execution service
func NewService(
	db *database.DB,
	validator *Validator,
	orderRepo *Repository,
	tradeRepo *trading.TradeRepository,
	positions *portfolio.PositionRepository,
	locks *locking.Manager,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		db:        db,
		validator: validator,
		orderRepo: orderRepo,
		tradeRepo: tradeRepo,
		positions: positions,
		locks:     locks,
		events:    eventManager,
		log:       log.With().Str("service", "orders").Logger(),
	}
}

// Place validates and places an order. Placements touching the same symbol
// are serialized via the per-symbol lock, covering the position
// read-modify-write; different symbols proceed in parallel.
func (s *Service) Place(req OrderRequest) (*Order, error) {
	draft, err := s.validator.Validate(req)
	if err != nil {
		return nil, err
	}

	s.locks.Acquire(draft.Symbol)
	defer s.locks.Release(draft.Symbol)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op after commit

	if err := s.orderRepo.Create(tx, draft); err != nil {
		return nil, err
	}

	var trade *trading.Trade
	if draft.Style == domain.OrderStyleMarket {
		trade, err = s.execute(tx, draft)
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.orderRepo.UpdateStatus(tx, draft.ID, domain.OrderStatusNew, domain.OrderStatusPlaced); err != nil {
			return nil, err
		}
		draft.Status = domain.OrderStatusPlaced
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order placement: %w", err)
	}

	s.events.Emit(events.OrderAccepted, "orders", map[string]interface{}{
		"order_id": draft.ID,
		"symbol":   draft.Symbol,
		"status":   string(draft.Status),
	})

	if trade != nil {
		s.events.Emit(events.OrderExecuted, "orders", map[string]interface{}{
			"order_id": draft.ID,
			"symbol":   draft.Symbol,
			"quantity": draft.Quantity,
			"price":    draft.Price,
		})
		s.events.Emit(events.TradeRecorded, "trading", map[string]interface{}{
			"trade_id": trade.ID,
			"order_id": trade.OrderID,
			"symbol":   trade.Symbol,
		})
	}

	s.log.Info().
		Int64("order_id", draft.ID).
		Str("symbol", draft.Symbol).
		Str("side", string(draft.Side)).
		Str("style", string(draft.Style)).
		Str("status", string(draft.Status)).
		Msg("Order placed")

	return draft, nil
}

// execute fills a market order at its resolved price: one trade, status
// EXECUTED, ledger updated. Runs entirely on the placement transaction.
// An order transitions to EXECUTED at most once; the status guard in
// UpdateStatus enforces that.
func (s *Service) execute(tx database.Queryer, order *Order) (*trading.Trade, error) {
	trade := &trading.Trade{
		OrderID:    order.ID,
		Symbol:     order.Symbol,
		Quantity:   order.Quantity,
		Price:      order.Price,
		ExecutedAt: time.Now(),
	}

	if err := s.tradeRepo.Create(tx, trade); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(tx, order.ID, domain.OrderStatusNew, domain.OrderStatusExecuted); err != nil {
		return nil, err
	}

	if err := s.positions.Apply(tx, trade.Symbol, order.Side, trade.Quantity, trade.Price); err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusExecuted
	return trade, nil
}

// Get returns an order by id
func (s *Service) Get(orderID int64) (*Order, error) {
	return s.orderRepo.GetByID(orderID)
}

package portfolio

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/database"
	"github.com/quantara/tradesim/internal/domain"
)

// PositionRepository handles position database operations
type PositionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, log zerolog.Logger) *PositionRepository {
	return &PositionRepository{
		db:  db,
		log: log.With().Str("repo", "position").Logger(),
	}
}

// GetAll returns all positions, including zero-quantity ones
func (r *PositionRepository) GetAll() ([]Position, error) {
	rows, err := r.db.Query("SELECT symbol, quantity, avg_price FROM positions ORDER BY symbol ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var pos Position
		if err := rows.Scan(&pos.Symbol, &pos.Quantity, &pos.AvgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// GetBySymbol returns the position for a symbol, or nil if none exists yet
func (r *PositionRepository) GetBySymbol(symbol string) (*Position, error) {
	return getPosition(r.db, symbol)
}

// Apply applies one executed trade to the position for symbol. The position
// is created on first trade and persists afterwards, even at zero quantity.
//
// BUY recomputes the average price as the quantity-weighted blend of the
// prior holding and the new fill; SELL only reduces quantity and may drive it
// negative (over-selling is not rejected here).
//
// Apply runs on the caller's Queryer so order execution can include it in a
// single transaction. It is not idempotent per trade: callers must apply each
// trade exactly once. Read-modify-write here relies on the caller holding the
// per-symbol lock.
func (r *PositionRepository) Apply(q database.Queryer, symbol string, side domain.OrderSide, quantity int64, price float64) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	pos, err := getPosition(q, symbol)
	if err != nil {
		return err
	}
	if pos == nil {
		if _, err := q.Exec(
			"INSERT INTO positions (symbol, quantity, avg_price) VALUES (?, 0, 0)",
			symbol,
		); err != nil {
			return fmt.Errorf("failed to create position: %w", err)
		}
		pos = &Position{Symbol: symbol}
	}

	switch {
	case side.IsBuy():
		newQty := pos.Quantity + quantity
		totalCost := float64(pos.Quantity)*pos.AvgPrice + float64(quantity)*price
		pos.AvgPrice = totalCost / float64(newQty)
		pos.Quantity = newQty
	case side.IsSell():
		pos.Quantity -= quantity
	default:
		return fmt.Errorf("cannot apply trade with side %q: %w", side, domain.ErrInvalidInput)
	}

	if _, err := q.Exec(
		"UPDATE positions SET quantity = ?, avg_price = ? WHERE symbol = ?",
		pos.Quantity, pos.AvgPrice, symbol,
	); err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	r.log.Debug().
		Str("symbol", symbol).
		Str("side", string(side)).
		Int64("quantity", pos.Quantity).
		Float64("avg_price", pos.AvgPrice).
		Msg("Position updated")

	return nil
}

func getPosition(q database.Queryer, symbol string) (*Position, error) {
	var pos Position
	err := q.QueryRow(
		"SELECT symbol, quantity, avg_price FROM positions WHERE symbol = ?",
		strings.ToUpper(strings.TrimSpace(symbol)),
	).Scan(&pos.Symbol, &pos.Quantity, &pos.AvgPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query position: %w", err)
	}
	return &pos, nil
}

package trading

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/database"
)

// TradeRepository handles trade database operations
type TradeRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *sql.DB, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		db:  db,
		log: log.With().Str("repo", "trade").Logger(),
	}
}

// Create inserts a new trade record and assigns its id. Runs on the caller's
// Queryer so execution can include it in a single transaction.
func (r *TradeRepository) Create(q database.Queryer, trade *Trade) error {
	result, err := q.Exec(`
		INSERT INTO trades (order_id, symbol, quantity, price, executed_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		trade.OrderID,
		strings.ToUpper(strings.TrimSpace(trade.Symbol)),
		trade.Quantity,
		trade.Price,
		trade.ExecutedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get trade id: %w", err)
	}
	trade.ID = id

	r.log.Info().
		Int64("trade_id", trade.ID).
		Int64("order_id", trade.OrderID).
		Str("symbol", trade.Symbol).
		Int64("quantity", trade.Quantity).
		Float64("price", trade.Price).
		Msg("Trade created")

	return nil
}

// GetAll returns all trades in execution order
func (r *TradeRepository) GetAll() ([]Trade, error) {
	rows, err := r.db.Query(`
		SELECT id, order_id, symbol, quantity, price, executed_at
		FROM trades
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// GetByOrderID retrieves the trade for an executed order, or nil if none
func (r *TradeRepository) GetByOrderID(orderID int64) (*Trade, error) {
	rows, err := r.db.Query(`
		SELECT id, order_id, symbol, quantity, price, executed_at
		FROM trades
		WHERE order_id = ?
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade by order_id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	trade, err := scanTrade(rows)
	if err != nil {
		return nil, err
	}

	return &trade, nil
}

func scanTrade(rows *sql.Rows) (Trade, error) {
	var trade Trade
	var executedAt string

	if err := rows.Scan(
		&trade.ID,
		&trade.OrderID,
		&trade.Symbol,
		&trade.Quantity,
		&trade.Price,
		&executedAt,
	); err != nil {
		return Trade{}, fmt.Errorf("failed to scan trade: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, executedAt)
	if err != nil {
		return Trade{}, fmt.Errorf("failed to parse trade timestamp: %w", err)
	}
	trade.ExecutedAt = ts

	return trade, nil
}

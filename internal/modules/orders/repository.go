package orders

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/database"
	"github.com/quantara/tradesim/internal/domain"
)

// Repository handles order database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new order repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "order").Logger(),
	}
}

// Create inserts an order and assigns its monotonic id. Runs on the caller's
// Queryer so placement can include it in a single transaction.
func (r *Repository) Create(q database.Queryer, order *Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	result, err := q.Exec(`
		INSERT INTO orders (symbol, side, style, quantity, price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		order.Symbol,
		string(order.Side),
		string(order.Style),
		order.Quantity,
		order.Price,
		string(order.Status),
		order.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get order id: %w", err)
	}
	order.ID = id

	return nil
}

// UpdateStatus transitions an order's status. The transition is validated
// against the order lifecycle; EXECUTED and CANCELLED orders are immutable.
func (r *Repository) UpdateStatus(q database.Queryer, orderID int64, from, to domain.OrderStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("order %d: illegal status transition %s -> %s", orderID, from, to)
	}

	result, err := q.Exec(
		"UPDATE orders SET status = ? WHERE id = ? AND status = ?",
		string(to), orderID, string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order %d not in status %s", orderID, from)
	}

	return nil
}

// GetByID returns an order by id
func (r *Repository) GetByID(orderID int64) (*Order, error) {
	var order Order
	var side, style, status, createdAt string

	err := r.db.QueryRow(`
		SELECT id, symbol, side, style, quantity, price, status, created_at
		FROM orders
		WHERE id = ?
	`, orderID).Scan(
		&order.ID,
		&order.Symbol,
		&side,
		&style,
		&order.Quantity,
		&order.Price,
		&status,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	order.Side = domain.OrderSide(side)
	order.Style = domain.OrderStyle(style)
	order.Status = domain.OrderStatus(status)

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order timestamp: %w", err)
	}
	order.CreatedAt = ts

	return &order, nil
}

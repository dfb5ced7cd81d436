package trading

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantara/tradesim/internal/database"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { db.Close() })
	return db
}

func insertOrderRow(t *testing.T, db *database.DB, symbol string) int64 {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO orders (symbol, side, style, quantity, price, status, created_at)
		VALUES (?, 'BUY', 'MARKET', 10, 150.0, 'EXECUTED', ?)
	`, symbol, time.Now().Format(time.RFC3339))
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestCreateAndGetByOrderID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTradeRepository(db.Conn(), zerolog.Nop())

	orderID := insertOrderRow(t, db, "AAPL")

	trade := &Trade{
		OrderID:    orderID,
		Symbol:     "AAPL",
		Quantity:   10,
		Price:      150.0,
		ExecutedAt: time.Now(),
	}
	require.NoError(t, repo.Create(db, trade))
	assert.NotZero(t, trade.ID)

	found, err := repo.GetByOrderID(orderID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, trade.ID, found.ID)
	assert.Equal(t, "AAPL", found.Symbol)
	assert.Equal(t, int64(10), found.Quantity)
	assert.Equal(t, 150.0, found.Price)
}

func TestGetByOrderIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTradeRepository(db.Conn(), zerolog.Nop())

	found, err := repo.GetByOrderID(42)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetAllInExecutionOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTradeRepository(db.Conn(), zerolog.Nop())

	for _, symbol := range []string{"AAPL", "GOOGL", "TSLA"} {
		orderID := insertOrderRow(t, db, symbol)
		require.NoError(t, repo.Create(db, &Trade{
			OrderID:    orderID,
			Symbol:     symbol,
			Quantity:   1,
			Price:      100.0,
			ExecutedAt: time.Now(),
		}))
	}

	trades, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, "AAPL", trades[0].Symbol)
	assert.Equal(t, "GOOGL", trades[1].Symbol)
	assert.Equal(t, "TSLA", trades[2].Symbol)
	assert.Less(t, trades[0].ID, trades[1].ID)
}

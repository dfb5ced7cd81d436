package portfolio

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantara/tradesim/internal/database"
	"github.com/quantara/tradesim/internal/domain"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyCreatesPositionOnFirstTrade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())

	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideBuy, 10, 150.0))

	pos, err := repo.GetBySymbol("AAPL")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, int64(10), pos.Quantity)
	assert.Equal(t, 150.0, pos.AvgPrice)
}

func TestApplyBuyBlendsAveragePrice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())

	// BUY 10 @ 150 then BUY 10 @ 200 -> qty 20, avg (10*150+10*200)/20 = 175
	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideBuy, 10, 150.0))
	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideBuy, 10, 200.0))

	pos, err := repo.GetBySymbol("AAPL")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, int64(20), pos.Quantity)
	assert.Equal(t, 175.0, pos.AvgPrice)
}

func TestApplyWeightedAverageSequence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())

	// Sequential buys (q, p): avg must equal sum(q*p)/sum(q)
	fills := []struct {
		qty   int64
		price float64
	}{
		{5, 100.0},
		{15, 120.0},
		{30, 90.0},
	}

	var totalQty int64
	var totalCost float64
	for _, f := range fills {
		require.NoError(t, repo.Apply(db, "TSLA", domain.OrderSideBuy, f.qty, f.price))
		totalQty += f.qty
		totalCost += float64(f.qty) * f.price
	}

	pos, err := repo.GetBySymbol("TSLA")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, totalQty, pos.Quantity)
	assert.InDelta(t, totalCost/float64(totalQty), pos.AvgPrice, 1e-9)
}

func TestApplySellLeavesAveragePrice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())

	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideBuy, 10, 150.0))
	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideSell, 5, 9999.0))

	pos, err := repo.GetBySymbol("AAPL")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, int64(5), pos.Quantity)
	assert.Equal(t, 150.0, pos.AvgPrice)
}

func TestApplyOverSellGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())

	// No short-sale guard: selling more than held drives quantity negative
	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideBuy, 3, 150.0))
	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideSell, 8, 150.0))

	pos, err := repo.GetBySymbol("AAPL")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, int64(-5), pos.Quantity)
}

func TestPositionPersistsAtZeroQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPositionRepository(db.Conn(), zerolog.Nop())

	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideBuy, 10, 150.0))
	require.NoError(t, repo.Apply(db, "AAPL", domain.OrderSideSell, 10, 150.0))

	pos, err := repo.GetBySymbol("AAPL")
	require.NoError(t, err)
	require.NotNil(t, pos)
	assert.Equal(t, int64(0), pos.Quantity)

	positions, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}

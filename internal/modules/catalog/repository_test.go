package catalog

import (
	"path/filepath"
	"testing"

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

func TestSeedAndGetAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.Conn(), zerolog.Nop())

	require.NoError(t, repo.Seed(DefaultInstruments()))

	instruments, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, instruments, 3)

	// Ordered by symbol
	assert.Equal(t, "AAPL", instruments[0].Symbol)
	assert.Equal(t, "GOOGL", instruments[1].Symbol)
	assert.Equal(t, "TSLA", instruments[2].Symbol)
	assert.Equal(t, 150.0, instruments[0].LastTradedPrice)
	assert.Equal(t, "NASDAQ", instruments[0].Exchange)
	assert.Equal(t, "EQUITY", instruments[0].InstrumentType)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.Conn(), zerolog.Nop())

	require.NoError(t, repo.Seed(DefaultInstruments()))
	require.NoError(t, repo.Seed(DefaultInstruments()))

	instruments, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, instruments, 3)
}

func TestGetBySymbol(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.Conn(), zerolog.Nop())
	require.NoError(t, repo.Seed(DefaultInstruments()))

	inst, err := repo.GetBySymbol("GOOGL")
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.Equal(t, 2800.0, inst.LastTradedPrice)

	// Lookup normalizes case and whitespace
	inst, err = repo.GetBySymbol(" tsla ")
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.Equal(t, "TSLA", inst.Symbol)

	// Unknown symbol returns nil without error
	inst, err = repo.GetBySymbol("MSFT")
	require.NoError(t, err)
	assert.Nil(t, inst)
}

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Repository handles instrument database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new instrument repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "catalog").Logger(),
	}
}

// GetBySymbol returns an instrument by symbol, or nil if not found
func (r *Repository) GetBySymbol(symbol string) (*Instrument, error) {
	query := `
		SELECT symbol, exchange, instrument_type, last_traded_price
		FROM instruments
		WHERE symbol = ?
	`

	var inst Instrument
	err := r.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(symbol))).Scan(
		&inst.Symbol,
		&inst.Exchange,
		&inst.InstrumentType,
		&inst.LastTradedPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Instrument not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query instrument by symbol: %w", err)
	}

	return &inst, nil
}

// GetAll returns all catalog entries ordered by symbol
func (r *Repository) GetAll() ([]Instrument, error) {
	query := `
		SELECT symbol, exchange, instrument_type, last_traded_price
		FROM instruments
		ORDER BY symbol ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	var instruments []Instrument
	for rows.Next() {
		var inst Instrument
		if err := rows.Scan(
			&inst.Symbol,
			&inst.Exchange,
			&inst.InstrumentType,
			&inst.LastTradedPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		instruments = append(instruments, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instruments: %w", err)
	}

	return instruments, nil
}

// Seed inserts the given instruments if the catalog is empty.
// Idempotent: an already seeded catalog is left untouched.
func (r *Repository) Seed(instruments []Instrument) error {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM instruments").Scan(&count); err != nil {
		return fmt.Errorf("failed to count instruments: %w", err)
	}
	if count > 0 {
		r.log.Debug().Int("count", count).Msg("Catalog already seeded")
		return nil
	}

	query := `
		INSERT INTO instruments (symbol, exchange, instrument_type, last_traded_price)
		VALUES (?, ?, ?, ?)
	`

	for _, inst := range instruments {
		if _, err := r.db.Exec(query,
			strings.ToUpper(strings.TrimSpace(inst.Symbol)),
			inst.Exchange,
			inst.InstrumentType,
			inst.LastTradedPrice,
		); err != nil {
			return fmt.Errorf("failed to seed instrument %s: %w", inst.Symbol, err)
		}
	}

	r.log.Info().Int("count", len(instruments)).Msg("Catalog seeded")
	return nil
}

package portfolio

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// SnapshotRepository handles portfolio snapshot persistence
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repo", "snapshot").Logger(),
	}
}

// Create inserts a snapshot record and assigns its id
func (r *SnapshotRepository) Create(snapshot *Snapshot) error {
	result, err := r.db.Exec(`
		INSERT INTO portfolio_snapshots (taken_at, total_value, total_cost, position_count)
		VALUES (?, ?, ?, ?)
	`,
		snapshot.TakenAt,
		snapshot.TotalValue,
		snapshot.TotalCost,
		snapshot.PositionCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get snapshot id: %w", err)
	}
	snapshot.ID = id

	return nil
}

// GetRecent returns the most recent snapshots, newest first
func (r *SnapshotRepository) GetRecent(limit int) ([]Snapshot, error) {
	rows, err := r.db.Query(`
		SELECT id, taken_at, total_value, total_cost, position_count
		FROM portfolio_snapshots
		ORDER BY taken_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.TakenAt, &s.TotalValue, &s.TotalCost, &s.PositionCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}

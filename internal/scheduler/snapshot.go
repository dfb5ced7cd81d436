package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/quantara/tradesim/internal/events"
	"github.com/quantara/tradesim/internal/locking"
	"github.com/quantara/tradesim/internal/modules/portfolio"
)

// SnapshotJob stores a periodic mark-to-market valuation of the portfolio.
// Read-only over core state: it never touches orders, trades or positions.
type SnapshotJob struct {
	log         zerolog.Logger
	lockManager *locking.Manager
	portfolio   *portfolio.Service
	events      *events.Manager
}

// NewSnapshotJob creates a new portfolio snapshot job
func NewSnapshotJob(
	log zerolog.Logger,
	lockManager *locking.Manager,
	portfolioService *portfolio.Service,
	eventManager *events.Manager,
) *SnapshotJob {
	return &SnapshotJob{
		log:         log.With().Str("job", "portfolio_snapshot").Logger(),
		lockManager: lockManager,
		portfolio:   portfolioService,
		events:      eventManager,
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "portfolio_snapshot"
}

// Run executes the snapshot job
func (j *SnapshotJob) Run() error {
	j.lockManager.Acquire("portfolio_snapshot")
	defer j.lockManager.Release("portfolio_snapshot")

	startTime := time.Now()

	snapshot, err := j.portfolio.TakeSnapshot()
	if err != nil {
		j.log.Error().Err(err).Msg("Portfolio snapshot failed")
		j.events.EmitError("portfolio", err, map[string]interface{}{
			"job": j.Name(),
		})
		return err
	}

	j.events.Emit(events.SnapshotTaken, "portfolio", map[string]interface{}{
		"snapshot_id": snapshot.ID,
		"total_value": snapshot.TotalValue,
		"positions":   snapshot.PositionCount,
	})

	j.log.Info().
		Int64("snapshot_id", snapshot.ID).
		Dur("elapsed", time.Since(startTime)).
		Msg("Portfolio snapshot completed")

	return nil
}

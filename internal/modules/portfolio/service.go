package portfolio

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/quantara/tradesim/internal/modules/catalog"
)

// Service provides read-only portfolio projections
type Service struct {
	positionRepo *PositionRepository
	catalogRepo  *catalog.Repository
	snapshotRepo *SnapshotRepository
	log          zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(
	positionRepo *PositionRepository,
	catalogRepo *catalog.Repository,
	snapshotRepo *SnapshotRepository,
	log zerolog.Logger,
) *Service {
	return &Service{
		positionRepo: positionRepo,
		catalogRepo:  catalogRepo,
		snapshotRepo: snapshotRepo,
		log:          log.With().Str("service", "portfolio").Logger(),
	}
}

// GetHoldings returns all non-zero positions annotated with mark-to-market
// value (quantity times the instrument's last traded price, 0 if the
// instrument is missing from the catalog). Monetary fields are rounded to
// 2 decimal places for display; stored state is untouched.
func (s *Service) GetHoldings() ([]Holding, error) {
	positions, err := s.positionRepo.GetAll()
	if err != nil {
		return nil, err
	}

	instruments, err := s.catalogRepo.GetAll()
	if err != nil {
		return nil, err
	}

	pricesBySymbol := make(map[string]float64, len(instruments))
	for _, inst := range instruments {
		pricesBySymbol[inst.Symbol] = inst.LastTradedPrice
	}

	holdings := make([]Holding, 0, len(positions))
	for _, pos := range positions {
		if pos.Quantity == 0 {
			continue
		}

		currentPrice := pricesBySymbol[pos.Symbol] // 0 if instrument missing
		holdings = append(holdings, Holding{
			Symbol:       pos.Symbol,
			Quantity:     pos.Quantity,
			AveragePrice: round2(pos.AvgPrice),
			CurrentValue: round2(float64(pos.Quantity) * currentPrice),
		})
	}

	return holdings, nil
}

// GetSummary aggregates the current holdings: total market value, total cost
// basis and per-symbol weights.
func (s *Service) GetSummary() (*Summary, error) {
	holdings, err := s.GetHoldings()
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(holdings))
	costs := make([]float64, len(holdings))
	for i, h := range holdings {
		values[i] = h.CurrentValue
		costs[i] = float64(h.Quantity) * h.AveragePrice
	}

	summary := &Summary{
		TotalValue:    round2(floats.Sum(values)),
		TotalCost:     round2(floats.Sum(costs)),
		PositionCount: len(holdings),
		Weights:       make(map[string]float64, len(holdings)),
	}

	if summary.TotalValue != 0 {
		for _, h := range holdings {
			summary.Weights[h.Symbol] = round2(h.CurrentValue / summary.TotalValue)
		}
	}

	return summary, nil
}

// TakeSnapshot stores a point-in-time valuation of the portfolio
func (s *Service) TakeSnapshot() (*Snapshot, error) {
	summary, err := s.GetSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to build portfolio summary: %w", err)
	}

	snapshot := &Snapshot{
		TakenAt:       time.Now().Format(time.RFC3339),
		TotalValue:    summary.TotalValue,
		TotalCost:     summary.TotalCost,
		PositionCount: summary.PositionCount,
	}

	if err := s.snapshotRepo.Create(snapshot); err != nil {
		return nil, err
	}

	s.log.Info().
		Float64("total_value", snapshot.TotalValue).
		Int("positions", snapshot.PositionCount).
		Msg("Portfolio snapshot taken")

	return snapshot, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package portfolio

// Position represents the net holding in one instrument. Quantity is signed:
// sells exceeding the held quantity drive it negative (no short-sale guard).
// AvgPrice is the cost basis per unit, meaningful only while quantity > 0;
// it is recomputed on BUY executions only and stored at full precision.
type Position struct {
	Symbol   string  `json:"symbol"`
	Quantity int64   `json:"quantity"`
	AvgPrice float64 `json:"avgPrice"`
}

// Holding is a position annotated with mark-to-market value for display.
// AveragePrice and CurrentValue are rounded to 2 decimal places at render
// time; stored state keeps full precision.
type Holding struct {
	Symbol       string  `json:"symbol"`
	Quantity     int64   `json:"quantity"`
	AveragePrice float64 `json:"averagePrice"`
	CurrentValue float64 `json:"currentValue"`
}

// Summary aggregates the portfolio for reporting
type Summary struct {
	TotalValue    float64            `json:"totalValue"`
	TotalCost     float64            `json:"totalCost"`
	PositionCount int                `json:"positionCount"`
	Weights       map[string]float64 `json:"weights"`
}

// Snapshot is a stored point-in-time portfolio valuation
type Snapshot struct {
	ID            int64   `json:"id"`
	TakenAt       string  `json:"takenAt"`
	TotalValue    float64 `json:"totalValue"`
	TotalCost     float64 `json:"totalCost"`
	PositionCount int     `json:"positionCount"`
}

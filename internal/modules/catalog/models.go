package catalog

// Instrument represents a tradable security in the reference catalog.
// LastTradedPrice is the reference price used as the fill price for market
// orders; there is no live feed updating it.
type Instrument struct {
	Symbol          string  `json:"symbol"`
	Exchange        string  `json:"exchange"`
	InstrumentType  string  `json:"instrumentType"`
	LastTradedPrice float64 `json:"lastTradedPrice"`
}

// DefaultInstruments is the catalog seeded on first startup.
func DefaultInstruments() []Instrument {
	return []Instrument{
		{Symbol: "AAPL", Exchange: "NASDAQ", InstrumentType: "EQUITY", LastTradedPrice: 150.0},
		{Symbol: "GOOGL", Exchange: "NASDAQ", InstrumentType: "EQUITY", LastTradedPrice: 2800.0},
		{Symbol: "TSLA", Exchange: "NASDAQ", InstrumentType: "EQUITY", LastTradedPrice: 700.0},
	}
}

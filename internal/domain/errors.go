package domain

import "errors"

// Rejection reasons reported to callers. Handlers map these to HTTP status
// codes via errors.Is, so wrap them with context rather than replacing them.
var (
	// ErrInvalidInput marks a malformed request: non-positive or non-numeric
	// quantity, unknown side or style.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInstrumentNotFound marks an order against an unknown symbol.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrMissingPrice marks a LIMIT order without a positive price.
	ErrMissingPrice = errors.New("price is mandatory for LIMIT orders")

	// ErrNotFound marks a lookup of a nonexistent record.
	ErrNotFound = errors.New("not found")
)

// Reason returns the machine-readable reason code for a rejection error, or
// an empty string if err is not one of the domain errors.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, ErrInstrumentNotFound):
		return "InstrumentNotFound"
	case errors.Is(err, ErrMissingPrice):
		return "MissingPrice"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	}
	return ""
}

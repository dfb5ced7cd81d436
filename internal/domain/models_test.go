package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderSideFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OrderSide
		wantErr bool
	}{
		{
			name:  "buy",
			input: "BUY",
			want:  OrderSideBuy,
		},
		{
			name:  "sell",
			input: "SELL",
			want:  OrderSideSell,
		},
		{
			name:  "lowercase works",
			input: "buy",
			want:  OrderSideBuy,
		},
		{
			name:  "whitespace trimmed",
			input: " SELL ",
			want:  OrderSideSell,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "unknown side",
			input:   "HOLD",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderSideFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderStyleFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OrderStyle
		wantErr bool
	}{
		{
			name:  "market",
			input: "MARKET",
			want:  OrderStyleMarket,
		},
		{
			name:  "limit",
			input: "LIMIT",
			want:  OrderStyleLimit,
		},
		{
			name:  "lowercase works",
			input: "limit",
			want:  OrderStyleLimit,
		},
		{
			name:    "unknown style",
			input:   "STOP",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OrderStyleFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{name: "new to placed", from: OrderStatusNew, to: OrderStatusPlaced, want: true},
		{name: "new to executed", from: OrderStatusNew, to: OrderStatusExecuted, want: true},
		{name: "new to cancelled", from: OrderStatusNew, to: OrderStatusCancelled, want: true},
		{name: "placed to executed", from: OrderStatusPlaced, to: OrderStatusExecuted, want: true},
		{name: "placed to cancelled", from: OrderStatusPlaced, to: OrderStatusCancelled, want: true},
		{name: "placed to new", from: OrderStatusPlaced, to: OrderStatusNew, want: false},
		{name: "executed is terminal", from: OrderStatusExecuted, to: OrderStatusPlaced, want: false},
		{name: "executed cannot re-execute", from: OrderStatusExecuted, to: OrderStatusExecuted, want: false},
		{name: "cancelled is terminal", from: OrderStatusCancelled, to: OrderStatusExecuted, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReason(t *testing.T) {
	assert.Equal(t, "InvalidInput", Reason(ErrInvalidInput))
	assert.Equal(t, "InstrumentNotFound", Reason(ErrInstrumentNotFound))
	assert.Equal(t, "MissingPrice", Reason(ErrMissingPrice))
	assert.Equal(t, "NotFound", Reason(ErrNotFound))
	assert.Equal(t, "", Reason(errors.New("something else")))
}

package domain

import (
	"fmt"
	"strings"
)

// OrderSide represents the order direction (BUY or SELL)
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// IsValid checks if the order side is valid
func (s OrderSide) IsValid() bool {
	return s == OrderSideBuy || s == OrderSideSell
}

// IsBuy returns true if this is a BUY order
func (s OrderSide) IsBuy() bool {
	return s == OrderSideBuy
}

// IsSell returns true if this is a SELL order
func (s OrderSide) IsSell() bool {
	return s == OrderSideSell
}

// OrderSideFromString creates OrderSide from string (case-insensitive)
func OrderSideFromString(value string) (OrderSide, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "BUY":
		return OrderSideBuy, nil
	case "SELL":
		return OrderSideSell, nil
	default:
		return "", fmt.Errorf("invalid order side %q: %w", value, ErrInvalidInput)
	}
}

// OrderStyle represents how an order is priced (MARKET or LIMIT)
type OrderStyle string

const (
	OrderStyleMarket OrderStyle = "MARKET"
	OrderStyleLimit  OrderStyle = "LIMIT"
)

// IsValid checks if the order style is valid
func (s OrderStyle) IsValid() bool {
	return s == OrderStyleMarket || s == OrderStyleLimit
}

// OrderStyleFromString creates OrderStyle from string (case-insensitive)
func OrderStyleFromString(value string) (OrderStyle, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "MARKET":
		return OrderStyleMarket, nil
	case "LIMIT":
		return OrderStyleLimit, nil
	default:
		return "", fmt.Errorf("invalid order style %q: %w", value, ErrInvalidInput)
	}
}

// OrderStatus represents the order lifecycle state
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusExecuted  OrderStatus = "EXECUTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusPlaced, OrderStatusExecuted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
// EXECUTED and CANCELLED orders are immutable.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusExecuted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
// NEW -> PLACED -> EXECUTED, or NEW -> EXECUTED directly for market orders.
// CANCELLED is reachable from any non-terminal state (reserved for future
// cancel support; no operation currently performs it).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case OrderStatusNew:
		return next == OrderStatusPlaced || next == OrderStatusExecuted || next == OrderStatusCancelled
	case OrderStatusPlaced:
		return next == OrderStatusExecuted || next == OrderStatusCancelled
	}
	return false
}

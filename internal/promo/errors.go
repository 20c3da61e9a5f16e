package promo

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("promo code not found")
	ErrNotYetValid   = errors.New("promo code is not active yet")
	ErrExpired       = errors.New("promo code has expired")
	ErrUsageExceeded = errors.New("promo code usage limit reached")
)

// BelowMinimumError reports a subtotal under the code's minimum purchase.
// It carries the minimum so handlers can show the amount to the shopper.
type BelowMinimumError struct {
	MinimumCents int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum purchase of %s required", e.Formatted())
}

// Formatted returns the minimum in major currency units with two decimals,
// e.g. 5000 cents -> "50.00".
func (e *BelowMinimumError) Formatted() string {
	return fmt.Sprintf("%.2f", float64(e.MinimumCents)/100)
}

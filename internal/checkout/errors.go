package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrFeatureDisabled = errors.New("checkout is disabled")
	ErrMixedCurrency   = errors.New("cart has items in more than one currency")
)

// InvalidProductError names the cart slug that has no purchasable product
// record. One bad slug rejects the whole session.
type InvalidProductError struct {
	Slug string
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product in cart: %s", e.Slug)
}

// GatewayError wraps a payment gateway failure. The caller decides whether
// to retry; no session exists, so re-submission cannot double-charge.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

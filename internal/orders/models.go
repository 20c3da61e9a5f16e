package orders

import (
	"time"

	"store-service/internal/cart"
)

const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusCanceled = "canceled"
)

// Order is one checkout attempt. A row is created as pending when the
// payment session is opened and marked paid by the gateway webhook.
type Order struct {
	ID                    string      `json:"id"`
	CartID                string      `json:"cart_id"`
	Status                string      `json:"status"`
	Items                 []cart.Item `json:"items"`
	PromoCode             string      `json:"promo_code,omitempty"`
	DiscountCents         int64       `json:"discount_cents"`
	AmountTotalCents      int64       `json:"amount_total_cents"`
	Currency              string      `json:"currency"`
	StripeSessionID       string      `json:"stripe_session_id"`
	StripePaymentIntentID string      `json:"stripe_payment_intent_id,omitempty"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

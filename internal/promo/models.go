package promo

import "time"

type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixed        DiscountType = "fixed"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// UnlimitedUses is the MaxUses sentinel for codes without a usage cap.
const UnlimitedUses = -1

// PromoCode is a discount code record as stored in the database.
// CurrentUses is owned by the store; it only ever moves through
// Conf.IncrementUsage at order-paid time, never during validation.
type PromoCode struct {
	Code                 string       `json:"code"`
	Description          string       `json:"description"`
	DiscountType         DiscountType `json:"discount_type"`
	DiscountValue        float64      `json:"discount_value"`
	ValidFrom            *time.Time   `json:"valid_from,omitempty"`
	ValidUntil           *time.Time   `json:"valid_until,omitempty"`
	MaxUses              int          `json:"max_uses"`
	CurrentUses          int          `json:"current_uses"`
	MinimumPurchaseCents *int64       `json:"minimum_purchase_cents,omitempty"`
}

// Applied is the result of a successful validation, held by checkout UI
// state only and never persisted.
type Applied struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountCents int64        `json:"discount_cents"`
	Description   string       `json:"description,omitempty"`
}

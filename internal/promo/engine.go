package promo

import (
	"context"
	"math"
	"strings"
	"time"
)

// Lookup is the read side of the promo store the engine depends on.
type Lookup interface {
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
}

// Service validates promo codes against the store and computes discounts.
type Service struct {
	store Lookup
	now   func() time.Time
}

func NewService(store Lookup) *Service {
	return &Service{store: store, now: time.Now}
}

// Validate normalizes the code, looks it up and evaluates it against the
// cart subtotal at the current time. It never mutates the usage counter;
// that increment belongs to the order-paid flow.
func (s *Service) Validate(ctx context.Context, code string, subtotalCents int64) (Applied, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	rec, err := s.store.GetByCode(ctx, normalized)
	if err != nil {
		return Applied{}, err
	}
	if rec == nil {
		return Applied{}, ErrNotFound
	}

	return Evaluate(rec, subtotalCents, s.now())
}

// Evaluate decides validity and computes the discount for one promo record.
// Checks run in a fixed order and the first failure wins; callers see a
// single error, never an aggregate. Pure: same record, subtotal and clock
// always produce the same decision.
func Evaluate(rec *PromoCode, subtotalCents int64, now time.Time) (Applied, error) {
	if rec.ValidFrom != nil && now.Before(*rec.ValidFrom) {
		return Applied{}, ErrNotYetValid
	}
	if rec.ValidUntil != nil && now.After(*rec.ValidUntil) {
		return Applied{}, ErrExpired
	}
	if rec.MaxUses != UnlimitedUses && rec.CurrentUses >= rec.MaxUses {
		return Applied{}, ErrUsageExceeded
	}
	if rec.MinimumPurchaseCents != nil && subtotalCents < *rec.MinimumPurchaseCents {
		return Applied{}, &BelowMinimumError{MinimumCents: *rec.MinimumPurchaseCents}
	}

	return Applied{
		Code:          rec.Code,
		DiscountType:  rec.DiscountType,
		DiscountCents: discountCents(rec, subtotalCents),
		Description:   rec.Description,
	}, nil
}

func discountCents(rec *PromoCode, subtotalCents int64) int64 {
	switch rec.DiscountType {
	case DiscountPercentage:
		// Half-up rounding to the nearest cent.
		return int64(math.Floor(float64(subtotalCents)*rec.DiscountValue/100 + 0.5))
	case DiscountFixed:
		fixed := int64(rec.DiscountValue)
		// Clamp so a generous code cannot push the total negative.
		if fixed > subtotalCents {
			return subtotalCents
		}
		return fixed
	case DiscountFreeShipping:
		// Shipping is priced elsewhere; the code only flags eligibility.
		return 0
	default:
		return 0
	}
}

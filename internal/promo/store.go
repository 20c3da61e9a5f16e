package promo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Conf is the database-backed promo store.
type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{db: db}, nil
}

// GetByCode fetches a promo record by its canonical (uppercase) code.
// A missing code returns (nil, nil) so callers can distinguish "no such
// code" from a store failure.
func (c *Conf) GetByCode(ctx context.Context, code string) (*PromoCode, error) {
	query := `
		SELECT code, description, discount_type, discount_value,
		       valid_from, valid_until, max_uses, current_uses, minimum_purchase_cents
		FROM promo_codes
		WHERE code = $1
	`

	var rec PromoCode
	var validFrom, validUntil sql.NullTime
	var minimum sql.NullInt64

	err := c.db.QueryRowContext(ctx, query, code).Scan(
		&rec.Code, &rec.Description, &rec.DiscountType, &rec.DiscountValue,
		&validFrom, &validUntil, &rec.MaxUses, &rec.CurrentUses, &minimum,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	if validFrom.Valid {
		rec.ValidFrom = &validFrom.Time
	}
	if validUntil.Valid {
		rec.ValidUntil = &validUntil.Time
	}
	if minimum.Valid {
		rec.MinimumPurchaseCents = &minimum.Int64
	}
	return &rec, nil
}

// IncrementUsage bumps current_uses by one, guarded by the usage cap in the
// same statement so two concurrent orders cannot both take the last slot.
// Called only when an order is actually paid, never at validation time.
func (c *Conf) IncrementUsage(ctx context.Context, code string) error {
	query := `
		UPDATE promo_codes
		SET current_uses = current_uses + 1, updated_at = NOW()
		WHERE code = $1 AND (max_uses = -1 OR current_uses < max_uses)
	`

	res, err := c.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUsageExceeded
	}
	return nil
}

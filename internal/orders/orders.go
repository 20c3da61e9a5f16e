package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Conf is the database-backed order store.
type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{db: db}, nil
}

// CreateOrder records a pending order for a freshly created payment session.
func (c *Conf) CreateOrder(ctx context.Context, o Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, cart_id, status, items, promo_code, discount_cents,
		                    amount_total_cents, currency, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err = c.db.ExecContext(ctx, query, o.ID, o.CartID, StatusPending, items,
		o.PromoCode, o.DiscountCents, o.AmountTotalCents, o.Currency, o.StripeSessionID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetByID fetches a single order. A missing order returns (nil, nil).
func (c *Conf) GetByID(ctx context.Context, orderID string) (*Order, error) {
	query := `
		SELECT id, cart_id, status, items, promo_code, discount_cents,
		       amount_total_cents, currency, stripe_session_id,
		       COALESCE(stripe_payment_intent_id, ''), created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o Order
	var items []byte
	err := c.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.ID, &o.CartID, &o.Status, &items, &o.PromoCode, &o.DiscountCents,
		&o.AmountTotalCents, &o.Currency, &o.StripeSessionID,
		&o.StripePaymentIntentID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	return &o, nil
}

// MarkPaid moves a pending order to paid and records the payment intent id.
// The status guard keeps a replayed webhook from marking twice.
func (c *Conf) MarkPaid(ctx context.Context, orderID, paymentIntentID string) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, stripe_payment_intent_id = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`
	res, err := c.db.ExecContext(ctx, query, StatusPaid, paymentIntentID, orderID, StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Conf is the database-backed product store.
type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{db: db}, nil
}

// GetBySlug fetches a single product by its slug. A missing product returns
// (nil, nil); checkout treats that as a hard failure for the whole cart.
func (c *Conf) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	query := `
		SELECT id, title, slug, price_cents, currency, images, options, created_at, updated_at
		FROM products
		WHERE slug = $1
	`

	var p Product
	var images, options []byte

	err := c.db.QueryRowContext(ctx, query, slug).Scan(
		&p.ID, &p.Title, &p.Slug, &p.PriceCents, &p.Currency,
		&images, &options, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("failed to decode product images: %w", err)
		}
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &p.Options); err != nil {
			return nil, fmt.Errorf("failed to decode product options: %w", err)
		}
	}
	return &p, nil
}

// List returns products for the storefront, newest first, with simple
// limit/offset pagination.
func (c *Conf) List(ctx context.Context, limit, offset int) ([]Product, error) {
	query := `
		SELECT id, title, slug, price_cents, currency, images, options, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := c.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty catalog serializes as [] rather than null.
	out := []Product{}
	for rows.Next() {
		var p Product
		var images, options []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.PriceCents, &p.Currency,
			&images, &options, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if len(images) > 0 {
			if err := json.Unmarshal(images, &p.Images); err != nil {
				return nil, fmt.Errorf("failed to decode product images: %w", err)
			}
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &p.Options); err != nil {
				return nil, fmt.Errorf("failed to decode product options: %w", err)
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return out, nil
}

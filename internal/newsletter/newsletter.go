package newsletter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Conf is the database-backed newsletter subscriber store.
type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{db: db}, nil
}

// Subscribe records a subscriber. Signing up twice is fine; the email is
// unique and the second insert is a no-op.
func (c *Conf) Subscribe(ctx context.Context, email string) error {
	query := `
		INSERT INTO newsletter_subscribers (email, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (email) DO NOTHING
	`
	_, err := c.db.ExecContext(ctx, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return nil
}

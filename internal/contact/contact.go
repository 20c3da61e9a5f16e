package contact

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Message is one contact-form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Conf is the database-backed contact message store.
type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (Conf, error) {
	if db == nil {
		return Conf{}, fmt.Errorf("db is nil")
	}
	return Conf{db: db}, nil
}

// Save persists the message so a failed notification email never loses it.
func (c *Conf) Save(ctx context.Context, m Message) (int64, error) {
	query := `
		INSERT INTO contact_messages (name, email, subject, body, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`
	var id int64
	err := c.db.QueryRowContext(ctx, query, m.Name, m.Email, m.Subject, m.Body).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact message: %w", err)
	}
	return id, nil
}

package products

import "time"

// Product is the authoritative catalog record. PriceCents here is the only
// price checkout will put on a payment session.
type Product struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
	Images     []string  `json:"images,omitempty"`
	Options    []Option  `json:"options,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Option is one variant axis a shopper can pick from, e.g. Size -> S/M/L.
type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

package cart

// Item is one line of a shopping cart. PriceCents is the price the client
// saw when the item was added; checkout re-prices every item from the
// product store and ignores this value.
type Item struct {
	ProductID  string            `json:"product_id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	PriceCents int64             `json:"price_cents"`
	Currency   string            `json:"currency"`
	Quantity   int               `json:"quantity"`
	Options    map[string]string `json:"options,omitempty"`
}

package kafka

import "time"

const TopicOrderPaid = `store-service.order-paid`

// OrderPaidEvent is published once per line item when a payment succeeds,
// for fulfillment and inventory consumers.
type OrderPaidEvent struct {
	OrderId   string            `json:"order_id"`
	ProductId string            `json:"product_id"`
	Slug      string            `json:"slug"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

package kafka

import "time"

// Topics
const (
	TopicOrderPlaced = "storefront.order.placed"
)

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// OrderItemEvent is one purchased line inside an order event.
type OrderItemEvent struct {
	ProductID uint    `json:"product_id"`
	Slug      string  `json:"slug"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderPlacedEvent is published after a checkout transaction commits.
type OrderPlacedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Timestamp time.Time        `json:"timestamp"`
	OrderID   uint             `json:"order_id"`
	Reference string           `json:"reference"`
	UserID    uint             `json:"user_id"`
	Total     float64          `json:"total"`
	Items     []OrderItemEvent `json:"items"`
}

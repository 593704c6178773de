package models

import "time"

// OrderStatus tracks an order through its lifecycle. Transitions are
// forward-only.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
)

var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next goes forward in the
// lifecycle. Staying on the same status is not an advance.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	to, okNext := statusRank[next]
	return ok && okNext && to > from
}

// OrderItem snapshots a single cart line at the moment of checkout.
type OrderItem struct {
	ID              string  `json:"id"`
	Product         Product `json:"product"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"` // decoupled from later catalog price changes
}

// Order represents a completed checkout. Everything on it is fixed at
// creation time except Status, which only moves forward.
type Order struct {
	ID              string      `json:"id"`
	Status          OrderStatus `json:"status"`
	TotalPrice      float64     `json:"total_price"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
}

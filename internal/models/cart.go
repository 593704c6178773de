package models

// CartItem is a product snapshot plus the selected quantity. Cart totals and
// checkout use the price on the snapshot, never a live catalog lookup.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

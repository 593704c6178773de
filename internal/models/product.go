package models

// Product represents a purchasable item in the catalog. Catalog data is
// immutable; nothing in the core mutates a Product after seeding.
type Product struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug" validate:"required"`
	Name          string  `json:"name" validate:"required,min=3,max=100"`
	Description   string  `json:"description" validate:"omitempty,max=500"`
	Price         float64 `json:"price" validate:"gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
}

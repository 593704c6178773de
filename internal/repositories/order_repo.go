package repositories

import (
	"errors"

	"ngcommerce/internal/models"
)

// ErrOrderNotFound is returned when no order matches a lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access. Listings are
// most-recent-first: Create inserts at the head, and GetAll preserves that
// order without re-sorting.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	AdvanceStatus(id string, status models.OrderStatus) error
	// Orders are never deleted.
}

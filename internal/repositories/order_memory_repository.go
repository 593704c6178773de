package repositories

import (
	"fmt"
	"sync"
	"time"

	"ngcommerce/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
// Orders are kept in a slice with the newest at the head, so listing order
// is a property of insertion, not of a read-time sort.
type MemoryOrderRepository struct {
	orders []models.Order
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// GetAll returns all orders, most recent first.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, len(r.orders))
	copy(orderList, r.orders)
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			order := r.orders[i]
			return &order, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
}

// Create inserts a new order at the head of the list.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders = append([]models.Order{*order}, r.orders...)
	return nil
}

// AdvanceStatus moves the order with the given ID forward to status. The
// order is located by ID, never by position. Advancing to the status the
// order already has is a no-op, so a transition that fires twice stays
// harmless; moving backwards is rejected.
func (r *MemoryOrderRepository) AdvanceStatus(id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid order status: %s", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		current := r.orders[i].Status
		if current == status {
			return nil
		}
		if !current.CanAdvanceTo(status) {
			return fmt.Errorf("order %s cannot move from %s to %s", id, current, status)
		}
		r.orders[i].Status = status
		return nil
	}
	return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
}

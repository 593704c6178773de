package services

import (
	"sync"

	"ngcommerce/internal/models"
	"ngcommerce/internal/storage"
)

// CartService manages the active session's cart. Items keep insertion order,
// and every mutation mirrors the full cart to durable storage under the cart
// key. Persistence is fire-and-forget: the adapter logs failures and the
// in-memory cart stays authoritative.
type CartService struct {
	store *storage.Adapter

	mu    sync.RWMutex
	items []models.CartItem
}

// NewCartService creates a CartService, restoring any previously persisted
// cart. A corrupt persisted cart is discarded by the adapter and the cart
// starts empty.
func NewCartService(store *storage.Adapter) *CartService {
	s := &CartService{store: store}
	store.Load(storage.CartKey, &s.items)
	return s
}

// Add puts quantity units of product in the cart. If the product is already
// present its quantity is incremented in place, preserving position. A
// quantity below 1 is treated as 1. No stock ceiling is enforced here; that
// is the caller's concern.
func (s *CartService) Add(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			s.persist()
			return
		}
	}
	s.items = append(s.items, models.CartItem{Product: product, Quantity: quantity})
	s.persist()
}

// Remove deletes the entry for productID. Removing an absent product is a
// no-op, not an error.
func (s *CartService) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	s.persist()
}

// SetQuantity overwrites the quantity for productID in place. A quantity of
// zero or below removes the entry instead.
func (s *CartService) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
	} else {
		for i := range s.items {
			if s.items[i].ID == productID {
				s.items[i].Quantity = quantity
				break
			}
		}
	}
	s.persist()
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Items returns a copy of the cart in insertion order.
func (s *CartService) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the total number of units across all entries, recomputed on every
// call.
func (s *CartService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of price times quantity over all entries, recomputed on
// every call from the price captured on each item.
func (s *CartService) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// persist mirrors the cart to durable storage. Callers must hold mu.
func (s *CartService) persist() {
	s.store.Save(storage.CartKey, s.items)
}

func (s *CartService) removeLocked(productID string) {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

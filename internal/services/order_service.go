package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"ngcommerce/internal/models"
	"ngcommerce/internal/repositories"
	"ngcommerce/pkg/rabbitmq"

	"github.com/google/uuid"
)

// shippingAddress is the fixed demo address attached to every order.
const shippingAddress = "123 Quantum Way, Cybertown, 98765"

// DefaultProcessingDelay is how long a new order stays PENDING before the
// simulated out-of-band confirmation moves it to PROCESSING.
const DefaultProcessingDelay = 3 * time.Second

// OrderService converts carts into orders and simulates the delayed
// confirmation event (e.g. a payment webhook) that advances a new order from
// PENDING to PROCESSING.
type OrderService struct {
	orderRepo       repositories.OrderRepository
	mqClient        *rabbitmq.Client
	processingDelay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer // order id -> scheduled status advance
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case event publication is skipped. A non-positive processingDelay falls
// back to DefaultProcessingDelay.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client, processingDelay time.Duration) *OrderService {
	if processingDelay <= 0 {
		processingDelay = DefaultProcessingDelay
	}
	return &OrderService{
		orderRepo:       orderRepo,
		mqClient:        mqClient,
		processingDelay: processingDelay,
		pending:         make(map[string]*time.Timer),
	}
}

// Checkout atomically converts cart items into a new PENDING order at the
// head of the order list. It fails with ErrAuthenticationRequired when token
// is absent and with ErrEmptyCart when there is nothing to buy; neither
// failure creates an order. Line prices are snapshotted from the cart, so
// later catalog price changes never affect the order.
func (s *OrderService) Checkout(items []models.CartItem, token string) (*models.Order, error) {
	if token == "" {
		return nil, ErrAuthenticationRequired
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var totalPrice float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ID:              uuid.New().String(),
			Product:         item.Product,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Price, // cart price at the moment of checkout
		})
		totalPrice += item.Price * float64(item.Quantity)
	}

	newOrder := &models.Order{
		ID:              uuid.New().String(),
		Status:          models.StatusPending,
		TotalPrice:      totalPrice,
		ShippingAddress: shippingAddress,
		CreatedAt:       time.Now(),
		Items:           orderItems,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publish("order.created", map[string]interface{}{
		"orderID": newOrder.ID,
		"status":  newOrder.Status,
		"total":   newOrder.TotalPrice,
	})

	s.scheduleProcessing(newOrder.ID)

	return newOrder, nil
}

// FetchOrders returns all orders, most recent first (head-insertion order,
// never re-sorted). It fails with ErrAuthenticationRequired when token is
// absent.
func (s *OrderService) FetchOrders(token string) ([]models.Order, error) {
	if token == "" {
		return nil, ErrAuthenticationRequired
	}
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// CancelPendingTransition stops the scheduled status advance for orderID and
// reports whether one was still pending. Stop's result carries the answer:
// a timer whose callback already fired reports false even when the registry
// entry has not been cleaned up yet.
func (s *OrderService) CancelPendingTransition(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.pending[orderID]
	if !ok {
		return false
	}
	delete(s.pending, orderID)
	return timer.Stop()
}

// scheduleProcessing registers the one-shot PENDING to PROCESSING advance.
// The timer is keyed by order id so it can be cancelled, and the advance
// locates its target by id regardless of orders created in the interim.
func (s *OrderService) scheduleProcessing(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[orderID] = time.AfterFunc(s.processingDelay, func() {
		s.advanceOrder(orderID)
	})
}

func (s *OrderService) advanceOrder(orderID string) {
	s.mu.Lock()
	delete(s.pending, orderID)
	s.mu.Unlock()

	if err := s.orderRepo.AdvanceStatus(orderID, models.StatusProcessing); err != nil {
		log.Printf("order %s: scheduled status advance skipped: %v", orderID, err)
		return
	}

	s.publish("order.status_advanced", map[string]interface{}{
		"orderID": orderID,
		"status":  models.StatusProcessing,
	})
}

// publish sends a storefront event, fire-and-forget. Failures are logged
// and never affect the caller.
func (s *OrderService) publish(eventType string, data map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.Publish(eventType, data); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

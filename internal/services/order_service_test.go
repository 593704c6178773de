package services_test

import (
	"testing"
	"time"

	"ngcommerce/internal/models"
	"ngcommerce/internal/repositories"
	"ngcommerce/internal/services"

	"github.com/stretchr/testify/assert"
)

const testToken = "mock-session-token"

func newOrderService(delay time.Duration) (*services.OrderService, *repositories.MemoryOrderRepository) {
	repo := repositories.NewMemoryOrderRepository()
	return services.NewOrderService(repo, nil, delay), repo
}

func headphonesCart() []models.CartItem {
	return []models.CartItem{{Product: headphones, Quantity: 2}}
}

func TestOrderService_CheckoutRequiresToken(t *testing.T) {
	orderService, repo := newOrderService(time.Minute)

	_, err := orderService.Checkout(headphonesCart(), "")
	assert.ErrorIs(t, err, services.ErrAuthenticationRequired)

	orders, _ := repo.GetAll()
	assert.Empty(t, orders)
}

func TestOrderService_CheckoutRejectsEmptyCart(t *testing.T) {
	orderService, repo := newOrderService(time.Minute)

	_, err := orderService.Checkout(nil, testToken)
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	orders, _ := repo.GetAll()
	assert.Empty(t, orders)
}

func TestOrderService_CheckoutSnapshotsPrices(t *testing.T) {
	orderService, _ := newOrderService(time.Minute)

	order, err := orderService.Checkout(headphonesCart(), testToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.InDelta(t, 499.00, order.TotalPrice, 0.001)
	assert.NotEmpty(t, order.ShippingAddress)
	assert.False(t, order.CreatedAt.IsZero())

	assert.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, headphones.ID, item.Product.ID)
	assert.Equal(t, 2, item.Quantity)
	// The price is copied from the cart line, not looked up later.
	assert.InDelta(t, 249.50, item.PriceAtPurchase, 0.001)
}

func TestOrderService_FetchOrdersMostRecentFirst(t *testing.T) {
	orderService, _ := newOrderService(time.Minute)

	first, err := orderService.Checkout(headphonesCart(), testToken)
	assert.NoError(t, err)
	second, err := orderService.Checkout([]models.CartItem{{Product: laptop, Quantity: 1}}, testToken)
	assert.NoError(t, err)

	orders, err := orderService.FetchOrders(testToken)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderService_FetchOrdersRequiresToken(t *testing.T) {
	orderService, _ := newOrderService(time.Minute)

	_, err := orderService.FetchOrders("")
	assert.ErrorIs(t, err, services.ErrAuthenticationRequired)
}

func TestOrderService_DelayedTransitionTargetsOneOrder(t *testing.T) {
	orderService, _ := newOrderService(15 * time.Millisecond)

	held, err := orderService.Checkout(headphonesCart(), testToken)
	assert.NoError(t, err)
	// Freeze the first order so only the second one should advance.
	assert.True(t, orderService.CancelPendingTransition(held.ID))

	advancing, err := orderService.Checkout([]models.CartItem{{Product: laptop, Quantity: 1}}, testToken)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, advancing.Status)

	assert.Eventually(t, func() bool {
		order, err := orderService.GetOrderByID(advancing.ID)
		return err == nil && order.Status == models.StatusProcessing
	}, time.Second, 5*time.Millisecond)

	// The cancelled order is untouched even after the delay has passed.
	order, err := orderService.GetOrderByID(held.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestOrderService_CancelPendingTransition(t *testing.T) {
	orderService, _ := newOrderService(10 * time.Millisecond)

	order, err := orderService.Checkout(headphonesCart(), testToken)
	assert.NoError(t, err)

	assert.True(t, orderService.CancelPendingTransition(order.ID))
	// A second cancel finds nothing pending.
	assert.False(t, orderService.CancelPendingTransition(order.ID))

	time.Sleep(50 * time.Millisecond)
	got, err := orderService.GetOrderByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestOrderService_CancelAfterTransitionFired(t *testing.T) {
	orderService, _ := newOrderService(5 * time.Millisecond)

	order, err := orderService.Checkout(headphonesCart(), testToken)
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		got, err := orderService.GetOrderByID(order.ID)
		return err == nil && got.Status == models.StatusProcessing
	}, time.Second, 5*time.Millisecond)

	// The advance already happened, so the cancel must not claim otherwise.
	assert.False(t, orderService.CancelPendingTransition(order.ID))
}

func TestOrderService_GetOrderByIDNotFound(t *testing.T) {
	orderService, _ := newOrderService(time.Minute)

	_, err := orderService.GetOrderByID("ord-unknown")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

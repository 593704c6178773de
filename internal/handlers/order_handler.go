package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ngcommerce/internal/repositories"
	"ngcommerce/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders and checkout.
type OrderHandler struct {
	orderService *services.OrderService
	cartService  *services.CartService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, cartService *services.CartService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		cartService:  cartService,
	}
}

// RegisterRoutes registers the order routes with the Fiber app. The caller
// is expected to place this router behind the auth middleware.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	router.Post("/checkout", h.HandleCheckout)
}

// HandleGetOrders retrieves the order history, most recent first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.FetchOrders(bearerToken(c))
	if err != nil {
		if errors.Is(err, services.ErrAuthenticationRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleCheckout converts the session cart into an order and, on success,
// empties the cart.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	order, err := h.orderService.Checkout(h.cartService.Items(), bearerToken(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthenticationRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error creating order: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create order",
				"error":   err.Error(),
			})
		}
	}

	// The cart is spent once the order exists.
	h.cartService.Clear()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sessionId": fmt.Sprintf("cs_test_%d", time.Now().UnixMilli()),
		"order":     order,
	})
}

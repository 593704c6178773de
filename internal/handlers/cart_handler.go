package handlers

import (
	"errors"
	"fmt"
	"log"

	"ngcommerce/internal/repositories"
	"ngcommerce/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	cartService    *services.CartService
	catalogService *services.CatalogService
	validate       *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, catalogService *services.CatalogService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddItemRequest represents the request body for adding a product to the
// cart. Quantity defaults to 1 when omitted.
type AddItemRequest struct {
	Slug     string `json:"slug" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// SetQuantityRequest represents the request body for overwriting a line's
// quantity. Zero or below removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart returns the cart with its derived count and total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.cartPayload())
}

// HandleAddItem resolves the product by slug and adds it to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.catalogService.GetProductBySlug(req.Slug)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with slug %s not found", req.Slug),
			})
		}
		log.Printf("Error resolving product %s: %v", req.Slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}

	h.cartService.Add(*product, req.Quantity)
	return c.Status(fiber.StatusCreated).JSON(h.cartPayload())
}

// HandleSetQuantity overwrites the quantity for a cart line.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing set-quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	h.cartService.SetQuantity(c.Params("productId"), req.Quantity)
	return c.JSON(h.cartPayload())
}

// HandleRemoveItem deletes a cart line. Removing an absent product still
// succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	h.cartService.Remove(c.Params("productId"))
	return c.JSON(h.cartPayload())
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cartService.Clear()
	return c.JSON(h.cartPayload())
}

func (h *CartHandler) cartPayload() fiber.Map {
	return fiber.Map{
		"items": h.cartService.Items(),
		"count": h.cartService.Count(),
		"total": h.cartService.Total(),
	}
}

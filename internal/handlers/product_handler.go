package handlers

import (
	"errors"
	"fmt"
	"log"

	"ngcommerce/internal/repositories"
	"ngcommerce/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	catalogService *services.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app. The
// featured route must come before the slug route so "featured" is not
// swallowed as a slug.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/featured", h.HandleListFeatured)
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:slug", h.HandleGetProduct)
}

// HandleListProducts retrieves the catalog, optionally filtered by the q
// (free text) and category query parameters.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	query := c.Query("q")
	category := c.Query("category")

	var err error
	var products interface{}
	if query != "" || category != "" {
		products, err = h.catalogService.SearchProducts(query, category)
	} else {
		products, err = h.catalogService.GetAllProducts()
	}
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleListFeatured retrieves the curated featured subset.
func (h *ProductHandler) HandleListFeatured(c *fiber.Ctx) error {
	products, err := h.catalogService.GetFeaturedProducts()
	if err != nil {
		log.Printf("Error listing featured products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve featured products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.catalogService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with slug %s not found", slug),
			})
		}
		log.Printf("Error getting product %s: %v", slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

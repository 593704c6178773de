package handlers

import (
	"errors"
	"log"

	"ngcommerce/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	reviewService *services.ReviewService
	authService   *services.AuthService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService, authService *services.AuthService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		authService:   authService,
	}
}

// RegisterPublicRoutes registers review listing and summary. These must be
// registered before any bare auth middleware on the same router, or the
// middleware intercepts them first.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products/:productId/reviews", h.HandleListReviews)
	router.Get("/products/:productId/reviews/summary", h.HandleReviewSummary)
}

// RegisterProtectedRoutes registers review submission. The caller is expected
// to place this router behind the auth middleware.
func (h *ReviewHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/products/:productId/reviews", h.HandleSubmitReview)
}

// HandleListReviews returns the reviews for a product, newest first.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	return c.JSON(h.reviewService.List(c.Params("productId")))
}

// HandleReviewSummary returns aggregate rating statistics for a product.
func (h *ReviewHandler) HandleReviewSummary(c *fiber.Ctx) error {
	return c.JSON(h.reviewService.Summary(c.Params("productId")))
}

// HandleSubmitReview stores a new review for a product.
func (h *ReviewHandler) HandleSubmitReview(c *fiber.Ctx) error {
	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing review request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	review, err := h.reviewService.Submit(c.Params("productId"), input, bearerToken(c), h.authService.CurrentUser())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAuthenticationRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Review rejected",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error submitting review: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not submit review",
				"error":   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

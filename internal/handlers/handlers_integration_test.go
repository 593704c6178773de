package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ngcommerce/internal/handlers"
	"ngcommerce/internal/middleware"
	"ngcommerce/internal/models"
	"ngcommerce/internal/repositories"
	"ngcommerce/internal/services"
	"ngcommerce/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	demoEmail    = "test@example.com"
	demoPassword = "password"
)

// setupApp wires the full application against an isolated in-memory SQLite
// database, with a short order-processing delay so tests can observe the
// PENDING to PROCESSING transition.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&storage.Record{}))

	store := storage.NewAdapter(storage.NewGORMStore(db))

	catalogRepo := repositories.NewMemoryCatalogRepository(
		repositories.DefaultCatalog(),
		repositories.DefaultFeaturedSlugs(),
	)
	orderRepo := repositories.NewMemoryOrderRepository()

	catalogService := services.NewCatalogService(catalogRepo)
	cartService := services.NewCartService(store)
	authService := services.NewAuthService(store, "test_jwt_secret", demoEmail, demoPassword, "Test User")
	orderService := services.NewOrderService(orderRepo, nil, 20*time.Millisecond)
	reviewService := services.NewReviewService(store, nil)

	productHandler := handlers.NewProductHandler(catalogService)
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	orderHandler := handlers.NewOrderHandler(orderService, cartService)
	reviewHandler := handlers.NewReviewHandler(reviewService, authService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	productHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	orderHandler.RegisterRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)

	return app
}

// doJSON performs a request with an optional JSON body and bearer token,
// returning the status code and raw response body.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return resp.StatusCode, raw
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    demoEmail,
		"password": demoPassword,
	}, "")
	assert.Equal(t, http.StatusOK, status)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEmpty(t, body.Token)
	return body.Token
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	m.Run()
}

func TestLoginEndpoint(t *testing.T) {
	app := setupApp(t)

	// Wrong password is rejected with a generic message.
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    demoEmail,
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// Malformed payload fails validation.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "not-an-email",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)

	// The one valid credential pair succeeds.
	token := login(t, app)
	assert.NotEmpty(t, token)
}

func TestProductEndpoints(t *testing.T) {
	app := setupApp(t)

	status, raw := doJSON(t, app, http.MethodGet, "/api/v1/products/", nil, "")
	assert.Equal(t, http.StatusOK, status)
	var products []models.Product
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 6)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/products/featured", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 3)
	assert.Equal(t, "aether-wireless-headphones", products[0].Slug)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/products/aether-wireless-headphones", nil, "")
	assert.Equal(t, http.StatusOK, status)
	var product models.Product
	assert.NoError(t, json.Unmarshal(raw, &product))
	assert.InDelta(t, 249.50, product.Price, 0.001)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/ghost-product", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/products/?q=headphones", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 1)
}

func TestCartEndpoints(t *testing.T) {
	app := setupApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"slug":     "aether-wireless-headphones",
		"quantity": 2,
	}, "")
	assert.Equal(t, http.StatusCreated, status)
	var cart cartResponse
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Equal(t, 2, cart.Count)
	assert.InDelta(t, 499.00, cart.Total, 0.001)

	// Adding the same product merges into one line.
	status, raw = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"slug": "aether-wireless-headphones",
	}, "")
	assert.Equal(t, http.StatusCreated, status)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Count)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"slug": "not-in-catalog",
	}, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = doJSON(t, app, http.MethodPatch, "/api/v1/cart/items/3", map[string]interface{}{
		"quantity": 1,
	}, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Equal(t, 1, cart.Count)

	status, raw = doJSON(t, app, http.MethodDelete, "/api/v1/cart/items/3", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Empty(t, cart.Items)
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/checkout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	app := setupApp(t)
	token := login(t, app)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/checkout", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := doJSON(t, app, http.MethodGet, "/api/v1/orders/", nil, token)
	assert.Equal(t, http.StatusOK, status)
	var orders []models.Order
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Empty(t, orders)
}

func TestReviewEndpoints(t *testing.T) {
	app := setupApp(t)

	// Listing and summary are reachable with no token at all, even though
	// submission on the same path sits behind the auth middleware.
	status, raw := doJSON(t, app, http.MethodGet, "/api/v1/products/3/reviews", nil, "")
	assert.Equal(t, http.StatusOK, status)
	var reviews []models.Review
	assert.NoError(t, json.Unmarshal(raw, &reviews))
	assert.Empty(t, reviews)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/3/reviews/summary", nil, "")
	assert.Equal(t, http.StatusOK, status)

	// Submission is gated on authentication.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/products/3/reviews", map[string]interface{}{
		"rating":  5,
		"comment": "Great sound",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	token := login(t, app)

	// Out-of-range ratings are rejected on both sides of the boundary.
	for _, rating := range []int{0, 6} {
		status, _ = doJSON(t, app, http.MethodPost, "/api/v1/products/3/reviews", map[string]interface{}{
			"rating":  rating,
			"comment": "boundary check",
		}, token)
		assert.Equal(t, http.StatusBadRequest, status)
	}

	status, raw = doJSON(t, app, http.MethodPost, "/api/v1/products/3/reviews", map[string]interface{}{
		"rating":  5,
		"comment": "Great sound",
	}, token)
	assert.Equal(t, http.StatusCreated, status)
	var review models.Review
	assert.NoError(t, json.Unmarshal(raw, &review))
	assert.Equal(t, "3", review.ProductID)
	assert.Equal(t, "Test User", review.UserName)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/products/3/reviews", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &reviews))
	if assert.Len(t, reviews, 1) {
		assert.Equal(t, review.ID, reviews[0].ID)
	}

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/products/3/reviews/summary", nil, "")
	assert.Equal(t, http.StatusOK, status)
	var summary models.ReviewSummary
	assert.NoError(t, json.Unmarshal(raw, &summary))
	assert.Equal(t, 1, summary.TotalCount)
	assert.InDelta(t, 5.0, summary.AverageRating, 0.001)
}

// TestPurchaseEndToEnd walks the whole storefront flow: fill the cart, log
// in, check out, watch the order advance, and confirm the cart is spent.
func TestPurchaseEndToEnd(t *testing.T) {
	app := setupApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"slug":     "aether-wireless-headphones",
		"quantity": 2,
	}, "")
	assert.Equal(t, http.StatusCreated, status)
	var cart cartResponse
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.InDelta(t, 499.00, cart.Total, 0.001)

	token := login(t, app)

	status, raw = doJSON(t, app, http.MethodPost, "/api/v1/checkout", nil, token)
	assert.Equal(t, http.StatusCreated, status)
	var checkout struct {
		SessionID string       `json:"sessionId"`
		Order     models.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(raw, &checkout))
	assert.NotEmpty(t, checkout.SessionID)
	assert.Equal(t, models.StatusPending, checkout.Order.Status)
	assert.InDelta(t, 499.00, checkout.Order.TotalPrice, 0.001)
	assert.Len(t, checkout.Order.Items, 1)
	assert.InDelta(t, 249.50, checkout.Order.Items[0].PriceAtPurchase, 0.001)

	// The cart is empty once the order exists.
	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/cart/", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.Count)

	// The simulated confirmation advances the order to PROCESSING.
	assert.Eventually(t, func() bool {
		statusCode, raw := doJSON(t, app, http.MethodGet, "/api/v1/orders/", nil, token)
		if statusCode != http.StatusOK {
			return false
		}
		var orders []models.Order
		if err := json.Unmarshal(raw, &orders); err != nil || len(orders) != 1 {
			return false
		}
		return orders[0].ID == checkout.Order.ID && orders[0].Status == models.StatusProcessing
	}, time.Second, 10*time.Millisecond)
}

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ngcommerce/internal/handlers"
	"ngcommerce/internal/middleware"
	"ngcommerce/internal/repositories"
	"ngcommerce/internal/services"
	"ngcommerce/internal/storage"
	"ngcommerce/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "storefront.db")
	viper.SetDefault("JWT_SECRET", "dev_jwt_secret")
	viper.SetDefault("DEMO_EMAIL", "test@example.com")
	viper.SetDefault("DEMO_PASSWORD", "password")
	viper.SetDefault("DEMO_USER_NAME", "Test User")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("ORDER_PROCESSING_DELAY_MS", 3000)
	viper.AutomaticEnv() // Load environment variables

	// --- Durable storage ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&storage.Record{}); err != nil {
		log.Fatalf("Failed to migrate storage records: %v", err)
	}
	store := storage.NewAdapter(storage.NewGORMStore(db))

	// --- Optional event publisher ---
	// The storefront runs fine without a broker; events are then skipped.
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	catalogRepo := repositories.NewMemoryCatalogRepository(
		repositories.DefaultCatalog(),
		repositories.DefaultFeaturedSlugs(),
	)
	orderRepo := repositories.NewMemoryOrderRepository()

	// --- Services ---
	catalogService := services.NewCatalogService(catalogRepo)
	cartService := services.NewCartService(store)
	authService := services.NewAuthService(
		store,
		viper.GetString("JWT_SECRET"),
		viper.GetString("DEMO_EMAIL"),
		viper.GetString("DEMO_PASSWORD"),
		viper.GetString("DEMO_USER_NAME"),
	)
	processingDelay := time.Duration(viper.GetInt("ORDER_PROCESSING_DELAY_MS")) * time.Millisecond
	orderService := services.NewOrderService(orderRepo, mqClient, processingDelay)
	reviewService := services.NewReviewService(store, mqClient)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(catalogService)
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	orderHandler := handlers.NewOrderHandler(orderService, cartService)
	reviewHandler := handlers.NewReviewHandler(reviewService, authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	apiV1 := app.Group("/api/v1")

	// Public routes: catalog, auth, cart, review listing. All of these must
	// be registered before the auth middleware below.
	productHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)

	// Protected routes: orders, checkout, review submission.
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	orderHandler.RegisterRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects GORM with the configured driver. sqlite is the
// default so the demo needs no external services; postgres is available for
// a shared deployment.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

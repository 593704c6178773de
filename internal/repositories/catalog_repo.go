package repositories

import (
	"errors"

	"ngcommerce/internal/models"
)

// ErrProductNotFound is returned when no product matches a lookup.
var ErrProductNotFound = errors.New("product not found")

// CatalogRepository defines read-only access to the product catalog. The
// catalog never changes after seeding, so there are no write operations.
type CatalogRepository interface {
	GetAll() ([]models.Product, error)
	GetFeatured() ([]models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Search(query, category string) ([]models.Product, error)
}

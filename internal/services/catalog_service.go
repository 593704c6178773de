package services

import (
	"ngcommerce/internal/models"
	"ngcommerce/internal/repositories"
)

// CatalogService handles read access to the product catalog.
type CatalogService struct {
	repo repositories.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// GetAllProducts retrieves the full catalog in its stable order.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetFeaturedProducts retrieves the curated featured subset in display order.
func (s *CatalogService) GetFeaturedProducts() ([]models.Product, error) {
	return s.repo.GetFeatured()
}

// GetProductBySlug retrieves a single product by its slug.
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	return s.repo.GetBySlug(slug)
}

// SearchProducts filters the catalog by a free-text query and/or a category.
func (s *CatalogService) SearchProducts(query, category string) ([]models.Product, error) {
	return s.repo.Search(query, category)
}

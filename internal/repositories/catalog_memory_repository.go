package repositories

import (
	"fmt"
	"strings"

	"ngcommerce/internal/models"
)

// MemoryCatalogRepository is an in-memory, read-only implementation of
// CatalogRepository. It is immutable after construction and therefore safe
// for concurrent use without locking.
type MemoryCatalogRepository struct {
	products []models.Product
	bySlug   map[string]models.Product
	featured []models.Product
}

// NewMemoryCatalogRepository creates a catalog seeded with the given
// products. featuredSlugs selects the curated featured subset; its order is
// the display order and is independent of the full listing. Unknown slugs
// are skipped.
func NewMemoryCatalogRepository(products []models.Product, featuredSlugs []string) *MemoryCatalogRepository {
	bySlug := make(map[string]models.Product, len(products))
	for _, p := range products {
		bySlug[p.Slug] = p
	}

	featured := make([]models.Product, 0, len(featuredSlugs))
	for _, slug := range featuredSlugs {
		if p, ok := bySlug[slug]; ok {
			featured = append(featured, p)
		}
	}

	return &MemoryCatalogRepository{
		products: products,
		bySlug:   bySlug,
		featured: featured,
	}
}

// GetAll returns every product in the catalog in its fixed, stable order.
func (r *MemoryCatalogRepository) GetAll() ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetFeatured returns the curated featured subset in display order.
func (r *MemoryCatalogRepository) GetFeatured() ([]models.Product, error) {
	out := make([]models.Product, len(r.featured))
	copy(out, r.featured)
	return out, nil
}

// GetBySlug returns the product with the given slug.
func (r *MemoryCatalogRepository) GetBySlug(slug string) (*models.Product, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: slug %s", ErrProductNotFound, slug)
	}
	return &p, nil
}

// Search returns the products whose name or description contains query
// (case-insensitive) and whose category matches category. Either filter may
// be empty, in which case it matches everything.
func (r *MemoryCatalogRepository) Search(query, category string) ([]models.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

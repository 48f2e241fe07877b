package service

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/repository"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// CategoryAll is the selector value that passes every category.
const CategoryAll = "All"

// ProductReader is the read side of the product store.
type ProductReader interface {
	List(filter *repository.ProductFilter, orderByName bool) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
}

// CatalogService serves the public read-only catalog.
type CatalogService struct {
	products ProductReader
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(products ProductReader) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns the catalog filtered by the optional flags,
// newest first. One round trip, no retry.
func (s *CatalogService) ListProducts(filter *repository.ProductFilter) ([]models.Product, error) {
	return s.products.List(filter, false)
}

// ListByCategory returns one category sorted by name ascending, the order
// the category listing page asks for.
func (s *CatalogService) ListByCategory(category models.Category) ([]models.Product, error) {
	return s.products.List(&repository.ProductFilter{Category: string(category)}, true)
}

// GetProduct returns a single product or ErrProductNotFound.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// FilterProducts derives the subset of an already-fetched list matching a
// category selector and a free-text query. Pure and synchronous: category
// must match exactly (or all pass for CategoryAll), and name or description
// must contain the query case-insensitively. The empty query matches
// everything. Relative order of the source list is preserved.
func FilterProducts(list []models.Product, category string, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Product, 0, len(list))
	for _, p := range list {
		if category != "" && category != CategoryAll && string(p.Category) != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

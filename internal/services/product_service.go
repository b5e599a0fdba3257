package services

import (
	"strings"

	"suraah/internal/domain"
	"suraah/internal/repos"
)

// ProductService is the admin-side write path for the catalog.
type ProductService struct {
	Products *repos.Collection[domain.Product]
}

func NewProductService(products *repos.Collection[domain.Product]) *ProductService {
	return &ProductService{Products: products}
}

func (s *ProductService) Create(p domain.Product) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", domain.Invalid("name", "product name is required")
	}
	if p.Price < 0 {
		return "", domain.Invalid("price", "price cannot be negative")
	}
	if strings.TrimSpace(p.Category) == "" {
		return "", domain.Invalid("category", "category is required")
	}
	return s.Products.Create(p)
}

// Update merges the given fields. The generic path can set inStock
// independently of stockQuantity; only UpdateStock keeps them coupled.
func (s *ProductService) Update(id string, patch map[string]any) error {
	delete(patch, "id")
	return s.Products.Update(id, patch)
}

func (s *ProductService) Delete(id string) error {
	return s.Products.Delete(id)
}

// UpdateStock is the dedicated stock path: it writes the quantity and derives
// the in-stock flag from it.
func (s *ProductService) UpdateStock(id string, quantity int) error {
	if quantity < 0 {
		return domain.Invalid("stockQuantity", "stock quantity cannot be negative")
	}
	return s.Products.Update(id, map[string]any{
		"stockQuantity": quantity,
		"inStock":       quantity > 0,
	})
}

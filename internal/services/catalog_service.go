package services

import (
	"strings"

	"suraah/internal/domain"
	"suraah/internal/repos"
)

// CatalogService is the storefront read model over products and categories:
// one-shot snapshots plus live watch subscriptions.
type CatalogService struct {
	Products   *repos.Collection[domain.Product]
	Categories *repos.Collection[domain.Category]
}

func NewCatalogService(products *repos.Collection[domain.Product], categories *repos.Collection[domain.Category]) *CatalogService {
	return &CatalogService{Products: products, Categories: categories}
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Products.GetAll()
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Products.GetByID(id)
}

// ProductsByCategory filters on the category name; categories are referenced
// by name, not id.
func (s *CatalogService) ProductsByCategory(category string) ([]domain.Product, error) {
	return s.Products.GetAll(repos.Where("category", category))
}

// SearchProducts matches the query against name, description and tags,
// case-insensitively.
func (s *CatalogService) SearchProducts(q string) ([]domain.Product, error) {
	all, err := s.Products.GetAll()
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return all, nil
	}
	var out []domain.Product
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			tagsMatch(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func tagsMatch(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// FeaturedProducts returns up to limit in-stock products for the home page.
func (s *CatalogService) FeaturedProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	return s.Products.GetAll(repos.Where("inStock", true), repos.Limit(limit))
}

// ListCategories returns every category in display order.
func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Categories.GetAll(repos.OrderBy("sortOrder"))
}

// ActiveCategories is the customer-facing navigation list.
func (s *CatalogService) ActiveCategories() ([]domain.Category, error) {
	return s.Categories.GetAll(repos.Where("isActive", true), repos.OrderBy("sortOrder"))
}

func (s *CatalogService) GetCategory(id string) (domain.Category, error) {
	return s.Categories.GetByID(id)
}

func (s *CatalogService) WatchProducts(fn func([]domain.Product)) *repos.Subscription {
	return s.Products.Subscribe(fn)
}

func (s *CatalogService) WatchCategories(fn func([]domain.Category)) *repos.Subscription {
	return s.Categories.Subscribe(fn, repos.OrderBy("sortOrder"))
}

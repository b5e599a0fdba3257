package services

import (
	"strings"

	"suraah/internal/domain"
	"suraah/internal/repos"
)

type CategoryService struct {
	Categories *repos.Collection[domain.Category]
}

func NewCategoryService(categories *repos.Collection[domain.Category]) *CategoryService {
	return &CategoryService{Categories: categories}
}

func (s *CategoryService) Create(c domain.Category) (string, error) {
	if strings.TrimSpace(c.Name) == "" {
		return "", domain.Invalid("name", "category name is required")
	}
	return s.Categories.Create(c)
}

func (s *CategoryService) Update(id string, patch map[string]any) error {
	delete(patch, "id")
	return s.Categories.Update(id, patch)
}

func (s *CategoryService) Delete(id string) error {
	return s.Categories.Delete(id)
}

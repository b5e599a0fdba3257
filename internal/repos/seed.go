package repos

import "suraah/internal/domain"

type seedProduct struct {
	name, desc    string
	price         float64
	originalPrice float64
	category      string
	fabric        string
	sku           string
	stock         int
}

func (p seedProduct) toDomain() domain.Product {
	prod := domain.Product{
		Name:           p.name,
		Description:    p.desc,
		Price:          p.price,
		Images:         []string{p.sku + ".jpg"},
		Category:       p.category,
		Sizes:          []string{"M", "L", "XL", "XXL"},
		Colors:         []string{},
		InStock:        p.stock > 0,
		StockQuantity:  p.stock,
		Features:       []string{},
		Fabric:         p.fabric,
		Care:           []string{"Hand wash or gentle machine wash"},
		SKU:            p.sku,
		Tags:           []string{},
		Specifications: map[string]string{},
	}
	if p.originalPrice > 0 {
		op := p.originalPrice
		prod.OriginalPrice = &op
	}
	return prod
}

func domainCategory(name, desc string, sort int) domain.Category {
	return domain.Category{
		Name:        name,
		Description: desc,
		IsActive:    true,
		SortOrder:   sort,
	}
}

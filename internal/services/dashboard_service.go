package services

import (
	"suraah/internal/domain"
	"suraah/internal/repos"
)

// DashboardService aggregates the numbers the admin overview shows.
type DashboardService struct {
	Products   *repos.Collection[domain.Product]
	Categories *repos.Collection[domain.Category]
	Orders     *OrderService
}

func NewDashboardService(products *repos.Collection[domain.Product], categories *repos.Collection[domain.Category], orders *OrderService) *DashboardService {
	return &DashboardService{Products: products, Categories: categories, Orders: orders}
}

type DashboardStats struct {
	TotalProducts   int `json:"totalProducts"`
	TotalCategories int `json:"totalCategories"`
	TotalCustomers  int `json:"totalCustomers"`
	OrderStats
	RecentOrders     []domain.Order   `json:"recentOrders"`
	LowStockProducts []domain.Product `json:"lowStockProducts"`
}

const lowStockCutoff = 5

func (s *DashboardService) Stats() (DashboardStats, error) {
	var out DashboardStats

	np, err := s.Products.Count()
	if err != nil {
		return out, err
	}
	nc, err := s.Categories.Count()
	if err != nil {
		return out, err
	}
	out.TotalProducts = np
	out.TotalCategories = nc

	orders, err := s.Orders.List()
	if err != nil {
		return out, err
	}
	customers := map[string]struct{}{}
	for _, o := range orders {
		out.TotalOrders++
		out.TotalRevenue += o.TotalAmount
		switch o.Status {
		case domain.StatusPending:
			out.PendingOrders++
		case domain.StatusDelivered:
			out.CompletedOrders++
		}
		if o.CustomerInfo.Email != "" {
			customers[o.CustomerInfo.Email] = struct{}{}
		}
	}
	out.TotalCustomers = len(customers)
	if len(orders) > 5 {
		out.RecentOrders = orders[:5]
	} else {
		out.RecentOrders = orders
	}

	products, err := s.Products.GetAll()
	if err != nil {
		return out, err
	}
	for _, p := range products {
		if p.StockQuantity < lowStockCutoff {
			out.LowStockProducts = append(out.LowStockProducts, p)
		}
	}
	return out, nil
}

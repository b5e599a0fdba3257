package services

import (
	"fmt"
	"strings"
	"time"

	"suraah/internal/domain"
	"suraah/internal/metrics"
	"suraah/internal/repos"
)

type OrderInput struct {
	CustomerInfo    domain.CustomerInfo
	Items           []domain.OrderItem
	TotalAmount     float64
	ShippingAddress domain.Address
	BillingAddress  *domain.Address
	Notes           string
}

type OrderService struct {
	Orders  *repos.Collection[domain.Order]
	Metrics *metrics.StoreMetrics
}

func NewOrderService(orders *repos.Collection[domain.Order], m *metrics.StoreMetrics) *OrderService {
	return &OrderService{Orders: orders, Metrics: m}
}

// Create persists a new order with initial pending status and returns its id.
// Preconditions fail loudly with the offending field; nothing is written on
// rejection. Optional fields are omitted from the document when absent.
func (s *OrderService) Create(in OrderInput) (string, error) {
	if strings.TrimSpace(in.CustomerInfo.Name) == "" {
		return "", domain.Invalid("customerInfo.name", "customer name is required")
	}
	if strings.TrimSpace(in.CustomerInfo.Phone) == "" {
		return "", domain.Invalid("customerInfo.phone", "customer phone is required")
	}
	if len(in.Items) == 0 {
		return "", domain.Invalid("items", "order must contain at least one item")
	}
	if strings.TrimSpace(in.ShippingAddress.Street) == "" {
		return "", domain.Invalid("shippingAddress.street", "shipping address is required")
	}
	if strings.TrimSpace(in.ShippingAddress.City) == "" {
		return "", domain.Invalid("shippingAddress.city", "shipping city is required")
	}

	now := time.Now().UTC()
	o := domain.Order{
		CustomerInfo:  in.CustomerInfo,
		Items:         in.Items,
		TotalAmount:   in.TotalAmount,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		ShippingAddr:  in.ShippingAddress,
		BillingAddr:   in.BillingAddress,
		OrderDate:     now,
	}
	if n := strings.TrimSpace(in.Notes); n != "" {
		o.Notes = n
	}

	id, err := s.Orders.Create(o)
	if err != nil {
		return "", err
	}
	s.Metrics.OrderCreated()
	return id, nil
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	return s.Orders.GetByID(id)
}

// List returns all orders, newest first.
func (s *OrderService) List() ([]domain.Order, error) {
	return s.Orders.GetAll(repos.OrderByDesc("createdAt"))
}

func (s *OrderService) ByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	return s.Orders.GetAll(repos.Where("status", string(status)), repos.OrderByDesc("createdAt"))
}

func (s *OrderService) ByCustomerEmail(email string) ([]domain.Order, error) {
	return s.Orders.GetAll(repos.Where("customerInfo.email", email), repos.OrderByDesc("createdAt"))
}

func (s *OrderService) Recent(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Orders.GetAll(repos.OrderByDesc("createdAt"), repos.Limit(limit))
}

// UpdateStatus applies one admin-driven lifecycle transition. Reaching
// delivered stamps the delivery date; terminal states admit no further moves.
func (s *OrderService) UpdateStatus(id string, to domain.OrderStatus, trackingNumber string) error {
	o, err := s.Orders.GetByID(id)
	if err != nil {
		return err
	}
	if !o.Status.CanTransitionTo(to) {
		return fmt.Errorf("cannot move order %s from %s to %s", id, o.Status, to)
	}

	patch := map[string]any{"status": to}
	if tn := strings.TrimSpace(trackingNumber); tn != "" {
		patch["trackingNumber"] = tn
	}
	if to == domain.StatusDelivered {
		patch["deliveryDate"] = time.Now().UTC()
	}
	if err := s.Orders.Update(id, patch); err != nil {
		return err
	}
	s.Metrics.StatusTransition(string(to))
	return nil
}

func (s *OrderService) UpdatePayment(id string, ps domain.PaymentStatus) error {
	if _, err := s.Orders.GetByID(id); err != nil {
		return err
	}
	return s.Orders.Update(id, map[string]any{"paymentStatus": ps})
}

func (s *OrderService) Delete(id string) error {
	return s.Orders.Delete(id)
}

func (s *OrderService) Watch(fn func([]domain.Order)) *repos.Subscription {
	return s.Orders.Subscribe(fn, repos.OrderByDesc("createdAt"))
}

type OrderStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

func (s *OrderService) Statistics() (OrderStats, error) {
	orders, err := s.Orders.GetAll()
	if err != nil {
		return OrderStats{}, err
	}
	st := OrderStats{TotalOrders: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.StatusPending:
			st.PendingOrders++
		case domain.StatusDelivered:
			st.CompletedOrders++
		}
		st.TotalRevenue += o.TotalAmount
	}
	return st, nil
}

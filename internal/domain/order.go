package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// statusRank orders the fulfillment stages; cancelled sits outside the chain.
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusProcessing: 2,
	StatusShipped:    3,
	StatusDelivered:  4,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if _, ok := statusRank[st]; ok || st == StatusCancelled {
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Terminal reports whether no further status change is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo allows movement forward along
// pending → confirmed → processing → shipped → delivered, plus cancellation
// from any non-terminal state. Backward moves and moves out of terminal
// states are rejected.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if s.Terminal() || to == s {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fromRank, okFrom := statusRank[s]
	toRank, okTo := statusRank[to]
	return okFrom && okTo && toRank > fromRank
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return ps, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", s)
	}
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
	Image       string  `json:"image"`
}

type Order struct {
	ID             string        `json:"id"`
	CustomerID     string        `json:"customerId,omitempty"`
	CustomerInfo   CustomerInfo  `json:"customerInfo"`
	Items          []OrderItem   `json:"items"`
	TotalAmount    float64       `json:"totalAmount"`
	Status         OrderStatus   `json:"status"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	ShippingAddr   Address       `json:"shippingAddress"`
	BillingAddr    *Address      `json:"billingAddress,omitempty"`
	OrderDate      time.Time     `json:"orderDate"`
	DeliveryDate   *time.Time    `json:"deliveryDate,omitempty"`
	TrackingNumber string        `json:"trackingNumber,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// OrderIntent is the single pending "buy now" selection a browsing session
// holds before checkout.
type OrderIntent struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Quantity      int      `json:"quantity"`
	Image         string   `json:"image"`
	Size          string   `json:"size,omitempty"`
	Color         string   `json:"color,omitempty"`
	Category      string   `json:"category"`
}

func (i OrderIntent) TotalPrice() float64 { return i.Price * float64(i.Quantity) }

// AsOrderItem maps the intent into the persisted order-item shape.
func (i OrderIntent) AsOrderItem() OrderItem {
	return OrderItem{
		ProductID:   i.ID,
		ProductName: i.Name,
		Price:       i.Price,
		Quantity:    i.Quantity,
		Size:        i.Size,
		Color:       i.Color,
		Image:       i.Image,
	}
}

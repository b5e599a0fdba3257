package services

import (
	"fmt"
	"sort"
	"strings"

	"suraah/internal/domain"
	"suraah/internal/metrics"
	"suraah/internal/validate"
)

// CheckoutForm is the customer/address input collected at checkout. Email is
// optional; when absent a placeholder is synthesized from the phone number so
// the order document still satisfies its shape.
type CheckoutForm struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`

	ShippingStreet  string `json:"shippingStreet"`
	ShippingCity    string `json:"shippingCity"`
	ShippingState   string `json:"shippingState"`
	ShippingZip     string `json:"shippingZip"`
	ShippingCountry string `json:"shippingCountry"`

	Notes string `json:"notes"`
}

// FieldErrors maps form field → message. Empty means valid.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Validate runs the synchronous per-field checks gating submission.
func (f CheckoutForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.CustomerName) == "" {
		errs["customerName"] = "Name is required"
	}
	if strings.TrimSpace(f.CustomerPhone) == "" {
		errs["customerPhone"] = "Phone number is required"
	} else if _, ok := validate.Phone(f.CustomerPhone); !ok {
		errs["customerPhone"] = "Please enter a valid phone number"
	}
	if strings.TrimSpace(f.ShippingStreet) == "" {
		errs["shippingStreet"] = "Street address is required"
	}
	if strings.TrimSpace(f.ShippingCity) == "" {
		errs["shippingCity"] = "City is required"
	}
	if e := strings.TrimSpace(f.CustomerEmail); e != "" {
		if _, ok := validate.Email(e); !ok {
			errs["customerEmail"] = "Please enter a valid email address"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type CheckoutService struct {
	Intents *IntentService
	Orders  *OrderService
	Metrics *metrics.StoreMetrics
}

func NewCheckoutService(intents *IntentService, orders *OrderService, m *metrics.StoreMetrics) *CheckoutService {
	return &CheckoutService{Intents: intents, Orders: orders, Metrics: m}
}

// CheckoutResult carries what the confirmation view needs.
type CheckoutResult struct {
	OrderID string     `json:"orderId"`
	Quote   PriceQuote `json:"quote"`
}

// Submit turns the session's pending item plus the validated form into a
// persisted order. The total is recomputed here from the stored intent; the
// client's figure is never trusted. The intent is cleared only after the
// order is durably created, so a failed submission can simply be retried.
func (s *CheckoutService) Submit(sessionID string, form CheckoutForm) (CheckoutResult, error) {
	if errs := form.Validate(); errs != nil {
		s.Metrics.CheckoutRejected()
		return CheckoutResult{}, errs
	}

	it, err := s.Intents.Get(sessionID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if it == nil {
		s.Metrics.CheckoutRejected()
		return CheckoutResult{}, domain.Invalid("items", "no pending order item")
	}

	quote := Quote(it.TotalPrice())

	email := strings.TrimSpace(form.CustomerEmail)
	if email == "" {
		email = fmt.Sprintf("%s@customer.local", strings.TrimSpace(form.CustomerPhone))
	}
	country := strings.TrimSpace(form.ShippingCountry)
	if country == "" {
		country = "Bangladesh"
	}

	in := OrderInput{
		CustomerInfo: domain.CustomerInfo{
			Name:  strings.TrimSpace(form.CustomerName),
			Email: email,
			Phone: strings.TrimSpace(form.CustomerPhone),
		},
		Items:       []domain.OrderItem{it.AsOrderItem()},
		TotalAmount: quote.Total,
		ShippingAddress: domain.Address{
			Street:  strings.TrimSpace(form.ShippingStreet),
			City:    strings.TrimSpace(form.ShippingCity),
			State:   strings.TrimSpace(form.ShippingState),
			ZipCode: strings.TrimSpace(form.ShippingZip),
			Country: country,
		},
		Notes: form.Notes,
	}

	orderID, err := s.Orders.Create(in)
	if err != nil {
		// intent stays intact so the customer can retry
		return CheckoutResult{}, err
	}
	_ = s.Intents.Clear(sessionID)
	return CheckoutResult{OrderID: orderID, Quote: quote}, nil
}

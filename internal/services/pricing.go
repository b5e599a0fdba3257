package services

// Delivery pricing: flat fee waived once the subtotal passes the
// free-shipping threshold. A subtotal exactly at the threshold still pays.
const (
	FreeShippingThreshold = 2000.0
	FlatShippingFee       = 60.0
)

type PriceQuote struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shippingFee"`
	ExpressFee  float64 `json:"expressFee"`
	Total       float64 `json:"total"`
}

// Quote derives the checkout totals from the intent subtotal. Single delivery
// tier for now, so the express fee is always zero.
func Quote(subtotal float64) PriceQuote {
	q := PriceQuote{Subtotal: subtotal}
	if subtotal <= FreeShippingThreshold {
		q.ShippingFee = FlatShippingFee
	}
	q.Total = q.Subtotal + q.ShippingFee + q.ExpressFee
	return q
}

package domain

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusShipped, true}, // skipping stages forward is allowed
		{StatusPending, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false}, // no backward moves
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []OrderStatus{StatusDelivered, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestIntentTotals(t *testing.T) {
	it := OrderIntent{ID: "1", Name: "Panjabi", Price: 1690, Quantity: 2}
	if it.TotalPrice() != 3380 {
		t.Fatalf("want 3380, got %v", it.TotalPrice())
	}

	item := it.AsOrderItem()
	if item.ProductID != "1" || item.ProductName != "Panjabi" || item.Quantity != 2 || item.Price != 1690 {
		t.Fatalf("bad mapping: %+v", item)
	}
}

package services_test

import (
	"testing"

	"suraah/internal/domain"
	"suraah/internal/metrics"
	"suraah/internal/repos"
	"suraah/internal/services"
)

func newIntentService(t *testing.T) (*services.IntentService, *repos.Store) {
	t.Helper()
	s := memStore(t)
	return services.NewIntentService(repos.NewIntentRepo(s.DB), metrics.NewStoreMetrics()), s
}

func TestIntentSetAndTotals(t *testing.T) {
	svc, _ := newIntentService(t)
	sid := "sess-1"

	if err := svc.Set(sid, domain.OrderIntent{ID: "1", Name: "Panjabi", Price: 1690, Quantity: 2, Category: "Premium Panjabi"}); err != nil {
		t.Fatal(err)
	}

	total, err := svc.TotalPrice(sid)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3380 {
		t.Fatalf("want total 3380, got %v", total)
	}
	n, err := svc.TotalItems(sid)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("want 2 items, got %d", n)
	}
}

func TestIntentSetReplacesAndClampsQuantity(t *testing.T) {
	svc, _ := newIntentService(t)
	sid := "sess-1"

	if err := svc.Set(sid, domain.OrderIntent{ID: "1", Name: "a", Price: 100, Quantity: 3}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Set(sid, domain.OrderIntent{ID: "2", Name: "b", Price: 200, Quantity: 0}); err != nil {
		t.Fatal(err)
	}

	it, err := svc.Get(sid)
	if err != nil {
		t.Fatal(err)
	}
	if it == nil || it.ID != "2" {
		t.Fatalf("set must replace the previous intent: %+v", it)
	}
	if it.Quantity != 1 {
		t.Fatalf("quantity below one clamps to 1, got %d", it.Quantity)
	}
}

func TestIntentUpdateQuantityZeroClears(t *testing.T) {
	svc, store := newIntentService(t)
	sid := "sess-1"

	if err := svc.Set(sid, domain.OrderIntent{ID: "1", Name: "Panjabi", Price: 1690, Quantity: 2, Category: "Premium Panjabi"}); err != nil {
		t.Fatal(err)
	}

	it, err := svc.UpdateQuantity(sid, 0)
	if err != nil {
		t.Fatal(err)
	}
	if it != nil {
		t.Fatalf("quantity 0 must clear the intent, got %+v", it)
	}
	if got, _ := svc.Get(sid); got != nil {
		t.Fatalf("intent should be empty: %+v", got)
	}

	// durable copy removed too
	var n int
	if err := store.DB.Get(&n, `SELECT COUNT(*) FROM order_intents WHERE session_id = ?`, sid); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("durable intent row should be deleted")
	}

	// clearing twice is fine
	if _, err := svc.UpdateQuantity(sid, -1); err != nil {
		t.Fatal(err)
	}
	if total, _ := svc.TotalPrice(sid); total != 0 {
		t.Fatalf("empty intent totals 0, got %v", total)
	}
}

func TestIntentUpdateQuantity(t *testing.T) {
	svc, _ := newIntentService(t)
	sid := "sess-1"

	if err := svc.Set(sid, domain.OrderIntent{ID: "1", Name: "Panjabi", Price: 500, Quantity: 1}); err != nil {
		t.Fatal(err)
	}
	it, err := svc.UpdateQuantity(sid, 4)
	if err != nil {
		t.Fatal(err)
	}
	if it == nil || it.Quantity != 4 || it.TotalPrice() != 2000 {
		t.Fatalf("bad update: %+v", it)
	}

	// updating quantity with no intent present is a no-op
	if it, err := svc.UpdateQuantity("other-session", 3); err != nil || it != nil {
		t.Fatalf("want nil/nil, got %+v err=%v", it, err)
	}
}

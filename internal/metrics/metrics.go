package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts the business events the back office cares about.
type StoreMetrics struct {
	ordersCreated      prometheus.Counter
	statusTransitions  *prometheus.CounterVec
	checkoutRejected   prometheus.Counter
	liveSubscriptions  prometheus.Gauge
	intentMutations    prometheus.Counter
}

func NewStoreMetrics() *StoreMetrics {
	return newStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &StoreMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "suraah_orders_created_total",
			Help: "Total number of orders successfully created",
		}),
		statusTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "suraah_order_status_transitions_total",
			Help: "Order status transitions applied, by target status",
		}, []string{"to"}),
		checkoutRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "suraah_checkout_rejected_total",
			Help: "Checkout submissions rejected by validation",
		}),
		liveSubscriptions: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "suraah_live_subscriptions",
			Help: "Currently open collection watch streams",
		}),
		intentMutations: registerCounter(registerer, prometheus.CounterOpts{
			Name: "suraah_intent_mutations_total",
			Help: "Order-intent set/update/clear operations",
		}),
	}
}

func (m *StoreMetrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *StoreMetrics) StatusTransition(to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(to).Inc()
}

func (m *StoreMetrics) CheckoutRejected() {
	if m == nil {
		return
	}
	m.checkoutRejected.Inc()
}

func (m *StoreMetrics) SubscriptionOpened() {
	if m == nil {
		return
	}
	m.liveSubscriptions.Inc()
}

func (m *StoreMetrics) SubscriptionClosed() {
	if m == nil {
		return
	}
	m.liveSubscriptions.Dec()
}

func (m *StoreMetrics) IntentMutated() {
	if m == nil {
		return
	}
	m.intentMutations.Inc()
}

// Re-registering on restart paths should reuse the existing collector rather
// than fail.

func registerCounter(r prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := r.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

func registerCounterVec(r prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := r.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

func registerGauge(r prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	if err := r.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Gauge)
		}
		panic(err)
	}
	return g
}

package observ

import (
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics counts cart activity. Register it once per process.
type CartMetrics struct {
	mutations *prometheus.CounterVec
	loads     *prometheus.CounterVec
	sessions  prometheus.Gauge
}

func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	m := &CartMetrics{
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_operations_total",
				Help: "Cart operations that changed state, by operation",
			},
			[]string{"op"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_snapshot_loads_total",
				Help: "Cart snapshot loads at session start, by outcome",
			},
			[]string{"outcome"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_sessions_active",
			Help: "Cart engines currently held in memory",
		}),
	}
	reg.MustRegister(m.mutations, m.loads, m.sessions)
	return m
}

// Observe is a cart.Subscriber.
func (m *CartMetrics) Observe(c cart.Change) {
	m.mutations.WithLabelValues(string(c.Op)).Inc()
}

func (m *CartMetrics) Loaded(o cart.LoadOutcome) {
	m.loads.WithLabelValues(string(o)).Inc()
}

func (m *CartMetrics) SetActiveSessions(n int) {
	m.sessions.Set(float64(n))
}

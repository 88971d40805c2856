package cart

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opAdd    = "add"
	opUpdate = "update_quantity"
	opRemove = "remove"
)

// Metrics is optional; a nil *Metrics records nothing.
type Metrics struct {
	operations         *prometheus.CounterVec
	persistFailures    prometheus.Counter
	rehydrateFallbacks prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cvshop",
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Cart mutations applied, by operation.",
		}, []string{"op"}),
		persistFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cvshop",
			Subsystem: "cart",
			Name:      "persist_failures_total",
			Help:      "Cart writes that failed after a mutation.",
		}),
		rehydrateFallbacks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cvshop",
			Subsystem: "cart",
			Name:      "rehydrate_fallbacks_total",
			Help:      "Stored carts discarded as corrupt on load.",
		}),
	}
}

func (m *Metrics) operation(op string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op).Inc()
}

func (m *Metrics) persistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) rehydrateFallback() {
	if m == nil {
		return
	}
	m.rehydrateFallbacks.Inc()
}

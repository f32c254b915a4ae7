package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// storeMetrics holds the Prometheus metrics for the session store.
// A nil *storeMetrics disables collection; all methods are nil-safe.
type storeMetrics struct {
	mutations        *prometheus.CounterVec
	subscriberPanics prometheus.Counter
	hydrations       *prometheus.CounterVec
}

func newStoreMetrics(reg prometheus.Registerer) *storeMetrics {
	factory := promauto.With(reg)

	return &storeMetrics{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "State mutations by operation.",
		}, []string{"op"}),
		subscriberPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "store",
			Name:      "subscriber_panics_total",
			Help:      "Subscriber callbacks that panicked during notification.",
		}),
		hydrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "store",
			Name:      "hydrations_total",
			Help:      "Hydration attempts by outcome (restored, empty, corrupt).",
		}, []string{"outcome"}),
	}
}

func (m *storeMetrics) incMutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

func (m *storeMetrics) incSubscriberPanic() {
	if m == nil {
		return
	}
	m.subscriberPanics.Inc()
}

func (m *storeMetrics) incHydration(outcome string) {
	if m == nil {
		return
	}
	m.hydrations.WithLabelValues(outcome).Inc()
}

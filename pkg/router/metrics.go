package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routerMetrics holds the Prometheus metrics for navigation.
// A nil *routerMetrics disables collection; all methods are nil-safe.
type routerMetrics struct {
	navigations *prometheus.CounterVec
	redirects   *prometheus.CounterVec
	loadErrors  *prometheus.CounterVec
}

func newRouterMetrics(reg prometheus.Registerer) *routerMetrics {
	factory := promauto.With(reg)

	return &routerMetrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "router",
			Name:      "navigations_total",
			Help:      "Completed navigations by route.",
		}, []string{"route"}),
		redirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "router",
			Name:      "redirects_total",
			Help:      "Guard-issued redirects by originating route.",
		}, []string{"route"}),
		loadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appshell",
			Subsystem: "router",
			Name:      "load_errors_total",
			Help:      "Page loader failures by route.",
		}, []string{"route"}),
	}
}

func (m *routerMetrics) incNavigation(route string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(route).Inc()
}

func (m *routerMetrics) incRedirect(route string) {
	if m == nil {
		return
	}
	m.redirects.WithLabelValues(route).Inc()
}

func (m *routerMetrics) incLoadError(route string) {
	if m == nil {
		return
	}
	m.loadErrors.WithLabelValues(route).Inc()
}

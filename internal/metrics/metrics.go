package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookmarks"

// Metrics is a per-process registry. Each server builds its own so tests never
// collide on the global registerer.
type Metrics struct {
	registry *prometheus.Registry

	OriginChecks  *prometheus.CounterVec
	ViewsMounted  prometheus.Counter
	ViewsActive   prometheus.Gauge
	FetchOutcomes *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		OriginChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "origin_checks_total",
			Help:      "Requests to the greeting API by CORS origin decision.",
		}, []string{"result"}),
		ViewsMounted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_views_mounted_total",
			Help:      "Status views mounted.",
		}),
		ViewsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "status_views_active",
			Help:      "Status views currently mounted.",
		}),
		FetchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_fetches_total",
			Help:      "Completed status view fetches by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

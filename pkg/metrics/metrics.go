// Package metrics exposes console metrics for Prometheus.
package metrics

import (
	"net/http"

	"github.com/kubeconsole/console/pkg/kube/object"
	"github.com/kubeconsole/console/pkg/kube/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "console"

// Metrics collects console metrics into its own registry.
type Metrics struct {
	registry *prometheus.Registry

	deleted      *prometheus.CounterVec
	deleteFailed *prometheus.CounterVec
	fetches      *prometheus.CounterVec
	cached       *prometheus.GaugeVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		deleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "instance",
				Name:      "deleted_objects_total",
				Help:      "Objects deleted by cascading instance deletion.",
			},
			[]string{"kind"},
		),
		deleteFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "instance",
				Name:      "delete_failures_total",
				Help:      "Failed list or delete calls in cascading instance deletion.",
			},
			[]string{"kind"},
		),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "fetches_total",
				Help:      "List calls made by stores.",
			},
			[]string{"kind", "result"},
		),
		cached: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "objects",
				Help:      "Objects cached in stores at the last successful fetch.",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		m.deleted, m.deleteFailed, m.fetches, m.cached,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Deleted implements instance.Observer.
func (m *Metrics) Deleted(kind string, n int) {
	m.deleted.WithLabelValues(kind).Add(float64(n))
}

// Failed implements instance.Observer.
func (m *Metrics) Failed(kind string, n int) {
	m.deleteFailed.WithLabelValues(kind).Add(float64(n))
}

// ObserveFetch is a hook for store.Refresher.OnFetch.
func (m *Metrics) ObserveFetch(s *store.KubeStore, objs []object.KubeObject, err error) {
	kind := s.Kind().Name
	if err != nil {
		m.fetches.WithLabelValues(kind, "error").Inc()
		return
	}
	m.fetches.WithLabelValues(kind, "ok").Inc()
	m.cached.WithLabelValues(kind).Set(float64(len(objs)))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves metrics in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

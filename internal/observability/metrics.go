package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the prometheus collectors exposed on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	ImportRows   *prometheus.CounterVec
	LookupErrors *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "powertariffs_http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		ImportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "powertariffs_import_rows_total",
			Help: "Import rows processed, by importer and outcome.",
		}, []string{"importer", "outcome"}),
		LookupErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "powertariffs_lookup_errors_total",
			Help: "Area lookup failures, by error kind.",
		}, []string{"kind"}),
	}

	registry.MustRegister(m.HTTPRequests, m.ImportRows, m.LookupErrors)
	return m
}

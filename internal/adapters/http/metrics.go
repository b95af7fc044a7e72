package httpadapter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"findability/internal/domain"
)

// Metrics holds the collectors the HTTP layer updates.
type Metrics struct {
	requestLatency *prometheus.HistogramVec
	evaluations    *prometheus.CounterVec
}

// NewRegistry returns a registry preloaded with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requestLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_latency_seconds",
				Help:    "Latency of API requests in seconds by method, route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		evaluations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findability_evaluations_total",
				Help: "Total number of stored evaluations by badge",
			},
			[]string{"badge"},
		),
	}
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// RecordEvaluation counts a stored evaluation by its badge.
func (m *Metrics) RecordEvaluation(b domain.Badge) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(string(b)).Inc()
}

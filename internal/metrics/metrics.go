package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the health agent.
type Metrics struct {
	HealthChecks   *prometheus.CounterVec
	IssuesDetected *prometheus.CounterVec
	RecordsFetched prometheus.Counter
	FetchLatency   *prometheus.HistogramVec
	CacheLookups   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all collectors on a dedicated registry.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		HealthChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "health_checks_total",
				Help:      "Total number of daily health checks by outcome",
			},
			[]string{"outcome"},
		),
		IssuesDetected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_detected_total",
				Help:      "Total number of issues emitted by the rule engine",
			},
			[]string{"level", "metric"},
		),
		RecordsFetched: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_fetched_total",
				Help:      "Total number of campaign-day records received from the record source",
			},
		),
		FetchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "record_fetch_duration_seconds",
				Help:      "Latency of record source fetches",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "record_cache_lookups_total",
				Help:      "Record cache lookups by result",
			},
			[]string{"result"},
		),
		gatherer: registry,
	}
}

// RecordHealthCheck increments the health check counter for the outcome.
func (m *Metrics) RecordHealthCheck(outcome string) {
	m.HealthChecks.WithLabelValues(outcome).Inc()
}

// RecordIssue increments the issue counter.
func (m *Metrics) RecordIssue(level, metric string) {
	m.IssuesDetected.WithLabelValues(level, metric).Inc()
}

// ObserveFetch records the latency of a record source fetch.
func (m *Metrics) ObserveFetch(status string, started time.Time) {
	m.FetchLatency.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// RecordCacheLookup increments the cache lookup counter ("hit" or "miss").
func (m *Metrics) RecordCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Handler returns the HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

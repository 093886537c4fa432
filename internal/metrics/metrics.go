// Package metrics tracks operational metrics for city-events on Prometheus collectors.
//
// Counters track source requests by outcome, fallbacks and rendered documents;
// a histogram tracks how long each scraping strategy takes. All collectors live in
// a private registry exposed through Handler, so tests can create isolated recorders.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "city_events"

// Source request outcomes
const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
	StatusError = "error"
)

// Recorder owns the collectors. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	sourceTotal   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	fallbackTotal prometheus.Counter
	documentTotal *prometheus.CounterVec
}

// New creates a Recorder with its own registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sourceTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Number of scraping strategy requests by outcome",
		}, []string{"source", "status"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Time spent fetching and parsing a listing page",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 15},
		}, []string{"source"}),
		fallbackTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_total",
			Help:      "Number of lookups answered with demo events",
		}),
		documentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Number of generated documents by format and outcome",
		}, []string{"format", "status"}),
	}

	r.registry.MustRegister(r.sourceTotal, r.fetchDuration, r.fallbackTotal, r.documentTotal)
	return r
}

// ObserveSource records one strategy call
func (r *Recorder) ObserveSource(source, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.sourceTotal.WithLabelValues(source, status).Inc()
	r.fetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// IncrFallback counts a lookup that ended in the demo set
func (r *Recorder) IncrFallback() {
	if r == nil {
		return
	}
	r.fallbackTotal.Inc()
}

// ObserveDocument counts a generated (or failed) document
func (r *Recorder) ObserveDocument(format string, err error) {
	if r == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	r.documentTotal.WithLabelValues(format, status).Inc()
}

// Registry returns the registry backing this recorder
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

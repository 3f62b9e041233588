// Package metrics exposes Prometheus instrumentation for client calls.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records the outcome of every client call. A nil *Collector
// is valid and records nothing. It is safe for concurrent use.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
}

// NewCollector registers the client metrics on registry. A nil registry
// falls back to [prometheus.DefaultRegisterer].
func NewCollector(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Collector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpkit_requests_total",
				Help: "Total number of completed client calls by status code.",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "httpkit_request_duration_seconds",
				Help:    "Duration of client calls in seconds, including encode and decode.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		inFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "httpkit_requests_in_flight",
				Help: "Number of client calls currently in flight.",
			},
			[]string{"method"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpkit_errors_total",
				Help: "Total number of failed client calls by failure kind.",
			},
			[]string{"method", "kind"},
		),
	}
}

// Start marks a call as in flight. The returned func must be called
// once the call finishes.
func (c *Collector) Start(method string) func() {
	if c == nil {
		return func() {}
	}

	g := c.inFlight.WithLabelValues(method)
	g.Inc()

	return g.Dec
}

// RecordRequest records a call that produced a response.
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}

	c.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordError records a failed call. kind names the failing stage.
func (c *Collector) RecordError(method, kind string, duration time.Duration) {
	if c == nil {
		return
	}

	c.errorsTotal.WithLabelValues(method, kind).Inc()
	c.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

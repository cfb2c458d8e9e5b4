// Package metrics provides Prometheus metrics collection for the TradeFlow
// HTTP service. This package is internal and should not be imported by
// external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector registers and records the service's Prometheus metrics.
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	parsesTotal     *prometheus.CounterVec
	executionsTotal prometheus.Counter
	executionSteps  prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates a collector registering all metrics with the given
// registerer under the given namespace.
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.httpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	c.httpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	c.parsesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Total number of DSL parse requests by outcome",
		},
		[]string{"outcome"}, // success, invalid, error
	)

	c.executionsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Total number of workflow executions",
		},
	)

	c.executionSteps = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_steps",
			Help:      "Number of steps executed per workflow run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	return c
}

// RecordHTTPRequest records one handled HTTP request.
func (c *Collector) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordParse records one parse request by outcome: "success" for a valid
// program, "invalid" for validation failures, "error" for lexical or
// syntax failures.
func (c *Collector) RecordParse(outcome string) {
	c.parsesTotal.WithLabelValues(outcome).Inc()
}

// RecordExecution records one workflow execution and the number of steps
// it ran.
func (c *Collector) RecordExecution(steps int) {
	c.executionsTotal.Inc()
	c.executionSteps.Observe(float64(steps))
}

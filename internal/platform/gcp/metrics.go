package gcp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/wsup/internal/metrics"
)

var (
	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "gcp",
			Name:      "api_calls_total",
			Help:      "Total number of Google Cloud API calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "gcp",
			Name:      "api_latency_seconds",
			Help:      "Latency of Google Cloud API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"operation"},
	)
)

func init() {
	metrics.MustRegister(apiCallsTotal, apiLatency)
}

// Result label values.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultError    = "error"
)

func observeCall(op string, start time.Time, err error) {
	result := resultSuccess
	switch {
	case err == nil:
	case IsNotFound(err):
		result = resultNotFound
	default:
		result = resultError
	}
	apiCallsTotal.WithLabelValues(op, result).Inc()
	apiLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

package provisioning

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/wsup/internal/metrics"
)

var (
	phaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of reconcile phases in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14), // 100ms to ~27m
		},
		[]string{"phase"},
	)

	pollCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "poll_cycles_total",
			Help:      "Total number of state poll queries by target state",
		},
		[]string{"target"},
	)
)

func init() {
	metrics.MustRegister(phaseDuration, pollCycles)
}

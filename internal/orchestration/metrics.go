package orchestration

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/wsup/internal/metrics"
)

var (
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "reconcile_total",
			Help:      "Total number of reconciliations by result",
		},
		[]string{"result"},
	)

	reconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~68min
		},
	)
)

func init() {
	metrics.MustRegister(reconcileTotal, reconcileDuration)
}

func recordReconcile(start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	reconcileTotal.WithLabelValues(result).Inc()
	reconcileDuration.Observe(time.Since(start).Seconds())
}

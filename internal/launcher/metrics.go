package launcher

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/wsup/internal/metrics"
)

var (
	launchAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Name:      "launch_attempts_total",
		Help:      "Total number of IDE process starts",
	})

	launchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Name:      "launch_failures_total",
		Help:      "Total number of IDE process exits with an error",
	})
)

func init() {
	metrics.MustRegister(launchAttempts, launchFailures)
}

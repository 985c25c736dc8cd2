// Package metrics holds the process-wide prometheus registry that wsup
// packages register their collectors with.
//
// wsup is a short-lived CLI, so metrics are not scraped. They are written
// once at exit in the node_exporter textfile format when --metrics-file is
// given.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every wsup metric name.
const Namespace = "wsup"

// Registry is private to wsup; the default prometheus registry is not used.
var Registry = prometheus.NewRegistry()

// MustRegister registers collectors with Registry and panics on conflict.
func MustRegister(cs ...prometheus.Collector) {
	Registry.MustRegister(cs...)
}

// WriteToTextfile writes every registered metric to path atomically.
func WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

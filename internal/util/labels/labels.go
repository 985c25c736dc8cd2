package labels

import (
	"strings"
)

// Standard label keys.
const (
	// KeyManagedBy identifies the management system
	KeyManagedBy = "managed-by"

	// KeyWorkstation ties a resource to the workstation that caused it to exist
	KeyWorkstation = "wsup-workstation"

	// KeyComponent names the hierarchy level (cluster, config, instance, repository)
	KeyComponent = "wsup-component"
)

const ManagedByWsup = "wsup"

// Component values
const (
	ComponentCluster    = "cluster"
	ComponentRepository = "repository"
	ComponentConfig     = "config"
	ComponentInstance   = "instance"
)

const maxValueLength = 63

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the workstation and manager set.
func NewLabelBuilder(workstation string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyManagedBy:   ManagedByWsup,
			KeyWorkstation: Sanitize(workstation),
		},
	}
}

func (lb *LabelBuilder) WithComponent(component string) *LabelBuilder {
	lb.labels[KeyComponent] = component
	return lb
}

// Merge adds user-supplied labels. Keys and values are sanitized; entries
// whose key sanitizes to empty are dropped. Managed keys are never replaced.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		key := Sanitize(k)
		if key == "" || key == KeyManagedBy || key == KeyWorkstation {
			continue
		}
		lb.labels[key] = Sanitize(v)
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// Sanitize lower-cases s and replaces characters Google Cloud rejects in
// labels with dashes, truncating to 63 characters.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := b.String()
	if len(out) > maxValueLength {
		out = out[:maxValueLength]
	}
	return out
}

// IsManaged reports whether a label set was written by wsup for workstation.
func IsManaged(labels map[string]string, workstation string) bool {
	return labels[KeyManagedBy] == ManagedByWsup && labels[KeyWorkstation] == Sanitize(workstation)
}

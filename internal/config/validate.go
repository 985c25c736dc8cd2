package config

import (
	"errors"
	"time"

	"github.com/imamik/wsup/internal/util/naming"
)

// Validate checks required fields and value formats. Every problem is
// reported; the result joins one *ConfigurationError per field.
func (c *Config) Validate() error {
	var errs []error

	if c.Project == "" {
		errs = append(errs, invalid("project", "is required (set PROJECT_ID or project in %s)", DefaultConfigFileName))
	}
	if c.Region == "" {
		errs = append(errs, invalid("region", "is required"))
	}

	if c.Workstation.Name == "" {
		errs = append(errs, invalid("workstation.name", "is required (set WORKSTATION_NAME)"))
	} else if !naming.IsValidResourceID(c.Workstation.Name) {
		errs = append(errs, invalid("workstation.name", "%q must be a lower-case DNS label of at most 63 characters", c.Workstation.Name))
	} else if !naming.IsValidResourceID(c.ConfigID()) {
		errs = append(errs, invalid("workstation.name", "derived config id %q exceeds 63 characters", c.ConfigID()))
	}

	if c.Cluster.Name == "" {
		errs = append(errs, invalid("cluster.name", "is required"))
	} else if !naming.IsValidResourceID(c.Cluster.Name) {
		errs = append(errs, invalid("cluster.name", "%q must be a lower-case DNS label", c.Cluster.Name))
	}

	if _, err := c.PortRanges(); err != nil {
		errs = append(errs, invalid("workstation.allowedPorts", "%v", err))
	}

	switch c.Workstation.ReclaimPolicy {
	case ReclaimDelete, ReclaimRetain:
	default:
		errs = append(errs, invalid("workstation.reclaimPolicy", "must be %s or %s, got %q", ReclaimDelete, ReclaimRetain, c.Workstation.ReclaimPolicy))
	}

	if c.Workstation.DiskSizeGB < 0 {
		errs = append(errs, invalid("workstation.diskSizeGB", "must not be negative"))
	}

	durations := []struct {
		field string
		value time.Duration
	}{
		{"workstation.idleTimeout", c.Workstation.IdleTimeout},
		{"workstation.runningTimeout", c.Workstation.RunningTimeout},
		{"build.timeout", c.Build.Timeout},
		{"reconcile.pollInterval", c.Reconcile.PollInterval},
		{"reconcile.pollTimeout", c.Reconcile.PollTimeout},
	}
	for _, d := range durations {
		if d.value < 0 {
			errs = append(errs, invalid(d.field, "must not be negative"))
		}
	}
	if c.Reconcile.PollInterval == 0 {
		errs = append(errs, invalid("reconcile.pollInterval", "must be greater than zero"))
	}

	return errors.Join(errs...)
}

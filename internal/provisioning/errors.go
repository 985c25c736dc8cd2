package provisioning

import (
	"fmt"
	"time"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
)

// ConfigurationError reports a required input that is missing or malformed.
type ConfigurationError = config.ConfigurationError

// BuildError reports that the image build or push failed.
type BuildError struct {
	Image string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build of %s failed: %v", e.Image, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// RemoteAPIError wraps an unexpected control-plane failure.
type RemoteAPIError struct {
	Op       string
	Resource string
	Err      error
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *RemoteAPIError) Unwrap() error { return e.Err }

// TimeoutError reports that a resource did not reach Target within Timeout.
type TimeoutError struct {
	Resource     string
	Target       gcp.State
	LastObserved gcp.State
	Timeout      time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v waiting for %s to reach %s (last observed %s)",
		e.Timeout, e.Resource, e.Target, e.LastObserved)
}

// PolicyWriteConflict reports that an IAM policy changed between read and
// write. The write is not retried.
type PolicyWriteConflict struct {
	Resource string
	Err      error
}

func (e *PolicyWriteConflict) Error() string {
	return fmt.Sprintf("IAM policy of %s was modified concurrently: %v", e.Resource, e.Err)
}

func (e *PolicyWriteConflict) Unwrap() error { return e.Err }

// RemoteErr wraps err as a RemoteAPIError, or returns nil.
func RemoteErr(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteAPIError{Op: op, Resource: resource, Err: err}
}

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
)

// InstanceQuery reads the current instance. A nil instance means it does
// not exist.
type InstanceQuery func(ctx context.Context) (*gcp.Instance, error)

// AwaitState polls get until the instance reports target. The first query
// is immediate; later ones run every interval without backoff, and each
// unsatisfied check emits an EventStateWaiting. Query errors and an absent
// instance are observed as STATE_UNKNOWN and polling continues. A zero
// timeout waits until ctx is cancelled.
//
// On timeout a *TimeoutError is returned. If ctx itself is cancelled its
// error is returned instead.
func AwaitState(
	ctx context.Context,
	observer Observer,
	resource string,
	target gcp.State,
	get InstanceQuery,
	interval, timeout time.Duration,
) error {
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}

	last := gcp.StateUnknown
	cycle := 0
	condition := func(ctx context.Context) (bool, error) {
		cycle++
		pollCycles.WithLabelValues(string(target)).Inc()

		inst, err := get(ctx)
		switch {
		case err != nil:
			last = gcp.StateUnknown
		case inst == nil || inst.State == "":
			last = gcp.StateUnknown
		default:
			last = inst.State
		}

		if last == target {
			observer.Event(Event{
				Type:     EventStateReached,
				Resource: resource,
				Message:  fmt.Sprintf("reached %s after %d checks", target, cycle),
			})
			return true, nil
		}
		fields := map[string]string{
			"state":  string(last),
			"target": string(target),
			"check":  strconv.Itoa(cycle),
		}
		msg := fmt.Sprintf("%s is %s, waiting for %s", resource, last, target)
		if err != nil {
			fields["error"] = err.Error()
			msg = fmt.Sprintf("%s is %s (query failed: %v), waiting for %s", resource, last, err, target)
		}
		observer.Event(Event{
			Type:     EventStateWaiting,
			Resource: resource,
			Message:  msg,
			Fields:   fields,
		})
		return false, nil
	}

	var err error
	if timeout > 0 {
		err = wait.PollUntilContextTimeout(ctx, interval, timeout, true, condition)
	} else {
		err = wait.PollUntilContextCancel(ctx, interval, true, condition)
	}
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if timeout > 0 && (wait.Interrupted(err) || errors.Is(err, context.DeadlineExceeded)) {
		return &TimeoutError{
			Resource:     resource,
			Target:       target,
			LastObserved: last,
			Timeout:      timeout,
		}
	}
	return err
}

// AwaitInstanceState waits for the configured workstation to reach target,
// using the reconcile poll settings.
func (c *Context) AwaitInstanceState(target gcp.State) error {
	ref := c.InstanceRef()
	c.Observer.Printf("Waiting for %s to reach %s...", ref.Workstation, target)
	get := func(ctx context.Context) (*gcp.Instance, error) {
		return c.Client.GetInstance(ctx, ref)
	}
	return AwaitState(c, c.Observer, ref.Workstation, target, get,
		c.Config.Reconcile.PollInterval, c.Config.Reconcile.PollTimeout)
}

package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes all phases sequentially and stops at the first failure.
// There is no rollback; re-running is idempotent.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting reconcile with %d phases...", len(phases))

	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s phase not started: %w", phase.Name(), err)
		}

		phaseStart := time.Now()
		LogPhaseStart(ctx.Observer, phase.Name())

		err := phase.Provision(ctx)
		elapsed := time.Since(phaseStart)
		phaseDuration.WithLabelValues(phase.Name()).Observe(elapsed.Seconds())
		if err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), elapsed)
		ctx.Observer.Progress("reconcile", i+1, len(phases))
	}

	ctx.Observer.Printf("Reconcile completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

package compute

import (
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/util/labels"
)

// EnsureInstance creates the workstation when absent, and otherwise cycles
// it so that it runs the current config.
func (p *Provisioner) EnsureInstance(ctx *provisioning.Context) error {
	ref := ctx.InstanceRef()

	inst, err := ctx.Client.GetInstance(ctx, ref)
	if err != nil {
		return provisioning.RemoteErr("get workstation", ref.Workstation, err)
	}

	if inst == nil {
		return p.createInstance(ctx, ref)
	}

	provisioning.LogResourceExists(ctx.Observer, phase, "workstation", ref.Workstation)
	return p.restartInstance(ctx, ref, inst)
}

func (p *Provisioner) createInstance(ctx *provisioning.Context, ref gcp.InstanceRef) error {
	lbls := labels.NewLabelBuilder(ctx.Config.Workstation.Name).
		WithComponent(labels.ComponentInstance).
		Merge(ctx.Config.Workstation.Labels).
		Build()

	provisioning.LogResourceCreating(ctx.Observer, phase, "workstation", ref.Workstation)
	inst, err := ctx.Client.CreateInstance(ctx, ref, lbls)
	if err != nil {
		return provisioning.RemoteErr("create workstation", ref.Workstation, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "workstation", ref.Workstation)
	ctx.State.Instance = inst
	return nil
}

// restartInstance stops the workstation unless it is already stopped or
// stopping, waits for STATE_STOPPED, then starts it.
func (p *Provisioner) restartInstance(ctx *provisioning.Context, ref gcp.InstanceRef, inst *gcp.Instance) error {
	switch inst.State {
	case gcp.StateStopped:
	case gcp.StateStopping:
		ctx.Observer.Printf("[%s] %s is already stopping", phase, ref.Workstation)
	default:
		ctx.Observer.Printf("[%s] Stopping %s (currently %s)...", phase, ref.Workstation, inst.State)
		if err := ctx.Client.StopInstance(ctx, ref); err != nil {
			return provisioning.RemoteErr("stop workstation", ref.Workstation, err)
		}
	}

	if err := ctx.AwaitInstanceState(gcp.StateStopped); err != nil {
		return err
	}

	ctx.Observer.Printf("[%s] Starting %s...", phase, ref.Workstation)
	if err := ctx.Client.StartInstance(ctx, ref); err != nil {
		return provisioning.RemoteErr("start workstation", ref.Workstation, err)
	}

	expected := gcp.StateUnknown
	if ctx.Config.Reconcile.WaitForRunning {
		if err := ctx.AwaitInstanceState(gcp.StateRunning); err != nil {
			return err
		}
		expected = gcp.StateRunning
	} else {
		ctx.Observer.Printf("[%s] Not waiting for %s to run", phase, ref.Workstation)
	}

	p.refreshInstance(ctx, ref, inst, expected)
	return nil
}

// refreshInstance records the latest observed instance. The lifecycle change
// has already succeeded, so a failed read only downgrades the recorded state
// to expected.
func (p *Provisioner) refreshInstance(ctx *provisioning.Context, ref gcp.InstanceRef, previous *gcp.Instance, expected gcp.State) {
	latest, err := ctx.Client.GetInstance(ctx, ref)
	if err == nil && latest != nil {
		ctx.State.Instance = latest
		return
	}
	if err != nil {
		ctx.Observer.Printf("[%s] Could not re-read %s: %v", phase, ref.Workstation, err)
	}
	observed := *previous
	observed.State = expected
	ctx.State.Instance = &observed
}

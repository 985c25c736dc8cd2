package access

import (
	"context"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/provisioning"
)

const phase = "access"

// Provisioner grants the user principal access to the workstation and
// verifies that it answers.
type Provisioner struct{}

// NewProvisioner creates a new access provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.authorize(ctx); err != nil {
		return err
	}
	p.verify(ctx)
	return nil
}

func (p *Provisioner) authorize(ctx *provisioning.Context) error {
	member := ctx.Config.UserMember()
	if member == "" {
		ctx.Observer.Printf("[%s] No user principal configured, skipping authorization", phase)
		return nil
	}

	ref := ctx.InstanceRef()
	result, err := Grant(ctx, ctx.Client, ref, config.WorkstationUserRole, member)
	if err != nil {
		return err
	}

	ctx.State.PolicyUpdated = result == PolicyUpdated
	if result == PolicyUpdated {
		ctx.Observer.Printf("[%s] Granted %s on %s to %s", phase, config.WorkstationUserRole, ref.Workstation, member)
	} else {
		ctx.Observer.Printf("[%s] %s already has access to %s", phase, member, ref.Workstation)
	}
	return nil
}

// verify is best-effort: its failure is logged here and nowhere else.
func (p *Provisioner) verify(ctx *provisioning.Context) {
	ep := &ctx.State.Endpoint
	ep.Workstation = ctx.Config.Workstation.Name
	if ctx.State.Instance != nil {
		ep.State = ctx.State.Instance.State
		ep.Host = ctx.State.Instance.Host
	}

	if !ctx.Config.Reconcile.Verify {
		ctx.Observer.Printf("[%s] Verification disabled", phase)
		return
	}

	probeCtx := context.Context(ctx)
	if ctx.Timeouts != nil && ctx.Timeouts.Probe > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, ctx.Timeouts.Probe)
		defer cancel()
	}

	r, err := Verify(probeCtx, ctx.Client, ctx.InstanceRef())
	if r.Host != "" {
		ep.Host = r.Host
		ep.URL = r.URL
	}
	if err != nil {
		provisioning.LogBestEffortFailure(ctx.Observer, phase, "verification", err)
		return
	}
	ep.Reachable = true
	ctx.Observer.Printf("[%s] %s is reachable (HTTP %d)", phase, r.URL, r.Status)
}

package compute

import (
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/provisioning/infrastructure"
	"github.com/imamik/wsup/internal/util/labels"
)

// EnsureConfig creates the workstation config with the full parameter set,
// or updates the mutable fields of an existing one. Whether it exists is
// the only decision made; fields are not diffed.
func (p *Provisioner) EnsureConfig(ctx *provisioning.Context) error {
	ref := ctx.ConfigRef()

	spec, err := DesiredConfig(ctx)
	if err != nil {
		return err
	}

	existing, err := ctx.Client.GetConfig(ctx, ref)
	if err != nil {
		return provisioning.RemoteErr("get config", ref.Config, err)
	}

	if existing == nil {
		provisioning.LogResourceCreating(ctx.Observer, phase, "config", ref.Config)
		created, err := ctx.Client.CreateConfig(ctx, ref, spec)
		if err != nil {
			return provisioning.RemoteErr("create config", ref.Config, err)
		}
		provisioning.LogResourceCreated(ctx.Observer, phase, "config", ref.Config)
		ctx.State.Config = created
		ctx.State.ConfigCreated = true
		return nil
	}

	ctx.Observer.Printf("[%s] Updating config %s to image %s", phase, ref.Config, spec.Image)
	updated, err := ctx.Client.UpdateConfig(ctx, ref, spec)
	if err != nil {
		return provisioning.RemoteErr("update config", ref.Config, err)
	}
	provisioning.LogResourceUpdated(ctx.Observer, phase, "config", ref.Config)
	ctx.State.Config = updated
	return nil
}

// DesiredConfig builds the config parameters from the loaded configuration
// and the results of earlier phases.
func DesiredConfig(ctx *provisioning.Context) (gcp.ConfigSpec, error) {
	cfg := ctx.Config

	img := ctx.State.Image
	if img == "" {
		img = cfg.ImageRef()
	}
	if img == "" {
		return gcp.ConfigSpec{}, &provisioning.ConfigurationError{Field: "image", Reason: "image reference is unresolved"}
	}

	ranges, err := cfg.PortRanges()
	if err != nil {
		return gcp.ConfigSpec{}, &provisioning.ConfigurationError{Field: "workstation.allowedPorts", Reason: err.Error()}
	}
	ports := make([]gcp.PortRange, 0, len(ranges))
	for _, r := range ranges {
		ports = append(ports, gcp.PortRange{First: r.First, Last: r.Last})
	}

	sa, err := infrastructure.ResolveServiceAccount(ctx)
	if err != nil {
		return gcp.ConfigSpec{}, err
	}

	return gcp.ConfigSpec{
		MachineType:    cfg.Workstation.MachineType,
		DiskSizeGB:     cfg.Workstation.DiskSizeGB,
		DiskType:       cfg.Workstation.DiskType,
		ReclaimPolicy:  cfg.Workstation.ReclaimPolicy,
		ServiceAccount: sa,
		Image:          img,
		AllowedPorts:   ports,
		IdleTimeout:    cfg.Workstation.IdleTimeout,
		RunningTimeout: cfg.Workstation.RunningTimeout,
		Labels: labels.NewLabelBuilder(cfg.Workstation.Name).
			WithComponent(labels.ComponentConfig).
			Merge(cfg.Workstation.Labels).
			Build(),
	}, nil
}

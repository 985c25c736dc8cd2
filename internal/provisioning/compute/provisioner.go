package compute

import (
	"github.com/imamik/wsup/internal/provisioning"
)

const phase = "compute"

// Provisioner handles the workstation config and instance.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Config, create or update
	if err := p.EnsureConfig(ctx); err != nil {
		return err
	}

	// 2. Instance, create or restart
	return p.EnsureInstance(ctx)
}

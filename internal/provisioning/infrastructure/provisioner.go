package infrastructure

import (
	"github.com/imamik/wsup/internal/provisioning"
)

const phase = "infrastructure"

// Provisioner handles the resources every workstation depends on.
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. IAM bootstrap. The binding usually exists already, so a failure
	// is reported and dropped here.
	if err := p.BootstrapIAM(ctx); err != nil {
		provisioning.LogBestEffortFailure(ctx.Observer, phase, "iam bootstrap", err)
	}

	// 2. Cluster
	if err := p.EnsureCluster(ctx); err != nil {
		return err
	}

	// 3. Registry repository
	return p.EnsureRepository(ctx)
}

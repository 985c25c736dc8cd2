package infrastructure

import (
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/util/labels"
)

// EnsureCluster creates the workstation cluster when it does not exist. An
// existing cluster is used as is, even if its network differs.
func (p *Provisioner) EnsureCluster(ctx *provisioning.Context) error {
	ref := ctx.ClusterRef()

	cluster, err := ctx.Client.GetCluster(ctx, ref)
	if err != nil {
		return provisioning.RemoteErr("get cluster", ref.Cluster, err)
	}
	if cluster != nil {
		provisioning.LogResourceExists(ctx.Observer, phase, "cluster", ref.Cluster)
		ctx.State.Cluster = cluster
		return nil
	}

	spec := gcp.ClusterSpec{
		Network:    ctx.Config.Network(),
		Subnetwork: ctx.Config.Subnetwork(),
		Labels: labels.NewLabelBuilder(ctx.Config.Workstation.Name).
			WithComponent(labels.ComponentCluster).
			Build(),
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, "cluster", ref.Cluster)
	ctx.Observer.Printf("[%s] Creating cluster %s in %s (this can take 20 minutes or more)...", phase, ref.Cluster, ref.Region)
	cluster, err = ctx.Client.CreateCluster(ctx, ref, spec)
	if err != nil {
		return provisioning.RemoteErr("create cluster", ref.Cluster, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "cluster", ref.Cluster)
	ctx.State.Cluster = cluster
	return nil
}

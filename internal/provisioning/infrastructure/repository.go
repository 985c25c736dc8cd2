package infrastructure

import (
	"fmt"

	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/util/labels"
)

// EnsureRepository creates the Docker repository that holds the workstation
// image when it does not exist.
func (p *Provisioner) EnsureRepository(ctx *provisioning.Context) error {
	ref := ctx.RepositoryRef()
	repo, err := ctx.Client.GetRepository(ctx, ref)
	if err != nil {
		return provisioning.RemoteErr("get repository", ref.Repository, err)
	}
	if repo != nil {
		provisioning.LogResourceExists(ctx.Observer, phase, "repository", ref.Repository)
		ctx.State.Repository = repo
		return nil
	}

	spec := gcp.RepositorySpec{
		Format:      gcp.FormatDocker,
		Description: fmt.Sprintf("Container images for workstation %s", ctx.Config.Workstation.Name),
		Labels: labels.NewLabelBuilder(ctx.Config.Workstation.Name).
			WithComponent(labels.ComponentRepository).
			Build(),
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, "repository", ref.Repository)
	repo, err = ctx.Client.CreateRepository(ctx, ref, spec)
	if err != nil {
		return provisioning.RemoteErr("create repository", ref.Repository, err)
	}
	provisioning.LogResourceCreated(ctx.Observer, phase, "repository", ref.Repository)
	ctx.State.Repository = repo
	return nil
}

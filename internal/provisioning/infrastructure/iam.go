package infrastructure

import (
	"fmt"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/provisioning/access"
	"github.com/imamik/wsup/internal/util/naming"
)

// BootstrapIAM lets the workstation VM pull images by granting its service
// account the registry reader role on the project. The service account is
// the configured one, or the project's default compute account.
func (p *Provisioner) BootstrapIAM(ctx *provisioning.Context) error {
	sa, err := ResolveServiceAccount(ctx)
	if err != nil {
		return err
	}

	member := naming.ServiceAccountMember(sa)
	result, err := access.GrantProjectRole(ctx, ctx.Client, ctx.Config.Project, config.RegistryReaderRole, member)
	if err != nil {
		return err
	}

	if result == access.PolicyUpdated {
		ctx.Observer.Printf("[%s] Granted %s to %s", phase, config.RegistryReaderRole, member)
	} else {
		ctx.Observer.Printf("[%s] %s already holds %s", phase, member, config.RegistryReaderRole)
	}
	return nil
}

// ResolveServiceAccount returns the email the workstation VM runs as and
// records it in ctx.State. A configured account wins; otherwise the
// default compute account is derived from the project number.
func ResolveServiceAccount(ctx *provisioning.Context) (string, error) {
	if ctx.State.ServiceAccount != "" {
		return ctx.State.ServiceAccount, nil
	}
	if sa := ctx.Config.Workstation.ServiceAccount; sa != "" {
		ctx.State.ServiceAccount = sa
		return sa, nil
	}

	number, err := ctx.Client.GetProjectNumber(ctx, ctx.Config.Project)
	if err != nil {
		return "", provisioning.RemoteErr("resolve number of project", ctx.Config.Project, err)
	}
	if number == "" {
		return "", fmt.Errorf("project %s has no project number", ctx.Config.Project)
	}

	ctx.State.ServiceAccount = naming.ComputeServiceAccount(number)
	return ctx.State.ServiceAccount, nil
}

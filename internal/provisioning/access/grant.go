package access

import (
	"context"
	"fmt"

	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
)

// Grant ensures principal appears in the IAM policy of the instance, adding
// a binding for role when it does not. It performs exactly one read and at
// most one write. A stale etag on write is returned as a
// *provisioning.PolicyWriteConflict and is not retried.
func Grant(ctx context.Context, client gcp.PolicyManager, ref gcp.InstanceRef, role, principal string) (MergeResult, error) {
	policy, err := client.GetInstancePolicy(ctx, ref)
	if err != nil {
		return NoOp, provisioning.RemoteErr("get IAM policy of", ref.Workstation, err)
	}

	updated, result := EnsureBinding(policy, role, principal)
	if result == NoOp {
		return NoOp, nil
	}

	if _, err := client.SetInstancePolicy(ctx, ref, updated); err != nil {
		return NoOp, writeErr(ref.Workstation, err)
	}
	return PolicyUpdated, nil
}

// GrantProjectRole ensures member holds role on project.
func GrantProjectRole(ctx context.Context, client gcp.ProjectManager, project, role, member string) (MergeResult, error) {
	policy, err := client.GetProjectPolicy(ctx, project)
	if err != nil {
		return NoOp, provisioning.RemoteErr("get IAM policy of project", project, err)
	}

	updated, result := AddRoleMember(policy, role, member)
	if result == NoOp {
		return NoOp, nil
	}

	if _, err := client.SetProjectPolicy(ctx, project, updated); err != nil {
		return NoOp, writeErr(fmt.Sprintf("project %s", project), err)
	}
	return PolicyUpdated, nil
}

func writeErr(resource string, err error) error {
	if gcp.IsConflict(err) {
		return &provisioning.PolicyWriteConflict{Resource: resource, Err: err}
	}
	return provisioning.RemoteErr("set IAM policy of", resource, err)
}

package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/iam/apiv1/iampb"
)

// policyVersion requests conditional bindings in full so they survive a
// read-modify-write.
const policyVersion = 3

// GetInstancePolicy reads the IAM policy attached to a workstation.
func (c *RealClient) GetInstancePolicy(ctx context.Context, ref InstanceRef) (*Policy, error) {
	var pb *iampb.Policy
	err := c.read(ctx, "workstations.GetIamPolicy", func(ctx context.Context) error {
		var err error
		pb, err = c.workstations.GetIamPolicy(ctx, &iampb.GetIamPolicyRequest{
			Resource: ref.Name(),
			Options:  &iampb.GetPolicyOptions{RequestedPolicyVersion: policyVersion},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get iam policy for workstation %s: %w", ref.Workstation, err)
	}
	return policyFromPB(pb), nil
}

// SetInstancePolicy writes policy, including the etag it was read with.
// A stale etag yields an ABORTED error (see IsConflict).
func (c *RealClient) SetInstancePolicy(ctx context.Context, ref InstanceRef, policy *Policy) (*Policy, error) {
	var pb *iampb.Policy
	err := c.call(ctx, "workstations.SetIamPolicy", func(ctx context.Context) error {
		var err error
		pb, err = c.workstations.SetIamPolicy(ctx, &iampb.SetIamPolicyRequest{
			Resource: ref.Name(),
			Policy:   policyToPB(policy),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set iam policy for workstation %s: %w", ref.Workstation, err)
	}
	return policyFromPB(pb), nil
}

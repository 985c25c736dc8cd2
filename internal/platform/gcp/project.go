package gcp

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/iam/apiv1/iampb"
	"cloud.google.com/go/resourcemanager/apiv3/resourcemanagerpb"
)

func projectName(project string) string {
	return "projects/" + project
}

// GetProjectNumber resolves a project id to its numeric identifier.
func (c *RealClient) GetProjectNumber(ctx context.Context, project string) (string, error) {
	var pb *resourcemanagerpb.Project
	err := c.read(ctx, "resourcemanager.GetProject", func(ctx context.Context) error {
		var err error
		pb, err = c.projects.GetProject(ctx, &resourcemanagerpb.GetProjectRequest{Name: projectName(project)})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get project %s: %w", project, err)
	}

	number := strings.TrimPrefix(pb.GetName(), "projects/")
	if number == "" || number == pb.GetName() {
		return "", fmt.Errorf("unexpected project name %q", pb.GetName())
	}
	return number, nil
}

func (c *RealClient) GetProjectPolicy(ctx context.Context, project string) (*Policy, error) {
	var pb *iampb.Policy
	err := c.read(ctx, "resourcemanager.GetIamPolicy", func(ctx context.Context) error {
		var err error
		pb, err = c.projects.GetIamPolicy(ctx, &iampb.GetIamPolicyRequest{
			Resource: projectName(project),
			Options:  &iampb.GetPolicyOptions{RequestedPolicyVersion: policyVersion},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get iam policy for project %s: %w", project, err)
	}
	return policyFromPB(pb), nil
}

func (c *RealClient) SetProjectPolicy(ctx context.Context, project string, policy *Policy) (*Policy, error) {
	var pb *iampb.Policy
	err := c.call(ctx, "resourcemanager.SetIamPolicy", func(ctx context.Context) error {
		var err error
		pb, err = c.projects.SetIamPolicy(ctx, &iampb.SetIamPolicyRequest{
			Resource: projectName(project),
			Policy:   policyToPB(policy),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set iam policy for project %s: %w", project, err)
	}
	return policyFromPB(pb), nil
}

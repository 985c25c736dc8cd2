package gcp

import (
	"context"
	"fmt"

	workstations "cloud.google.com/go/workstations/apiv1"
	"cloud.google.com/go/workstations/apiv1/workstationspb"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

// configUpdatePaths are the only fields UpdateConfig touches.
var configUpdatePaths = []string{
	"container.image",
	"allowed_ports",
	"host.gce_instance.service_account",
}

// GetConfig returns the workstation config, or nil if it does not exist.
func (c *RealClient) GetConfig(ctx context.Context, ref ConfigRef) (*WorkstationConfig, error) {
	pb, err := getResource(ctx, c, "workstations.GetWorkstationConfig", func(ctx context.Context) (*workstationspb.WorkstationConfig, error) {
		return c.workstations.GetWorkstationConfig(ctx, &workstationspb.GetWorkstationConfigRequest{Name: ref.Name()})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get config %s: %w", ref.Config, err)
	}
	if pb == nil {
		return nil, nil
	}
	return configFromPB(pb), nil
}

// CreateConfig creates the config with the full parameter set.
func (c *RealClient) CreateConfig(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error) {
	const op = "workstations.CreateWorkstationConfig"
	req := &workstationspb.CreateWorkstationConfigRequest{
		Parent:              ref.ClusterRef.Name(),
		WorkstationConfigId: ref.Config,
		WorkstationConfig:   configToPB(spec),
	}

	var lro *workstations.CreateWorkstationConfigOperation
	err := c.call(ctx, op, func(ctx context.Context) error {
		var err error
		lro, err = c.workstations.CreateWorkstationConfig(ctx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config %s: %w", ref.Config, err)
	}

	pb, err := awaitOperation(ctx, c, op, func(ctx context.Context) (*workstationspb.WorkstationConfig, error) {
		return lro.Wait(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wait for config %s creation: %w", ref.Config, err)
	}
	return configFromPB(pb), nil
}

// UpdateConfig applies image, allowed ports and service account in place.
func (c *RealClient) UpdateConfig(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error) {
	const op = "workstations.UpdateWorkstationConfig"
	pb := configToPB(spec)
	pb.Name = ref.Name()
	req := &workstationspb.UpdateWorkstationConfigRequest{
		WorkstationConfig: pb,
		UpdateMask:        &fieldmaskpb.FieldMask{Paths: configUpdatePaths},
	}

	var lro *workstations.UpdateWorkstationConfigOperation
	err := c.call(ctx, op, func(ctx context.Context) error {
		var err error
		lro, err = c.workstations.UpdateWorkstationConfig(ctx, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update config %s: %w", ref.Config, err)
	}

	updated, err := awaitOperation(ctx, c, op, func(ctx context.Context) (*workstationspb.WorkstationConfig, error) {
		return lro.Wait(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wait for config %s update: %w", ref.Config, err)
	}
	return configFromPB(updated), nil
}

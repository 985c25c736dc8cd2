package gcp

import (
	"context"
	"fmt"

	workstations "cloud.google.com/go/workstations/apiv1"
	"cloud.google.com/go/workstations/apiv1/workstationspb"
)

// GetInstance returns the workstation, or nil if it does not exist.
func (c *RealClient) GetInstance(ctx context.Context, ref InstanceRef) (*Instance, error) {
	pb, err := getResource(ctx, c, "workstations.GetWorkstation", func(ctx context.Context) (*workstationspb.Workstation, error) {
		return c.workstations.GetWorkstation(ctx, &workstationspb.GetWorkstationRequest{Name: ref.Name()})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get workstation %s: %w", ref.Workstation, err)
	}
	if pb == nil {
		return nil, nil
	}
	return instanceFromPB(pb), nil
}

// CreateInstance creates the workstation and waits for the operation.
func (c *RealClient) CreateInstance(ctx context.Context, ref InstanceRef, labels map[string]string) (*Instance, error) {
	const op = "workstations.CreateWorkstation"
	req := &workstationspb.CreateWorkstationRequest{
		Parent:        ref.ConfigRef.Name(),
		WorkstationId: ref.Workstation,
		Workstation:   &workstationspb.Workstation{Labels: labels},
	}

	var lro *workstations.CreateWorkstationOperation
	err := c.call(ctx, op, func(ctx context.Context) error {
		var err error
		lro, err = c.workstations.CreateWorkstation(ctx, req)
		return err
	})
	if IsAlreadyExists(err) {
		return c.GetInstance(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create workstation %s: %w", ref.Workstation, err)
	}

	pb, err := awaitOperation(ctx, c, op, func(ctx context.Context) (*workstationspb.Workstation, error) {
		return lro.Wait(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wait for workstation %s creation: %w", ref.Workstation, err)
	}
	return instanceFromPB(pb), nil
}

// StartInstance requests a start. The control plane rejects it unless the
// workstation is stopped.
func (c *RealClient) StartInstance(ctx context.Context, ref InstanceRef) error {
	err := c.call(ctx, "workstations.StartWorkstation", func(ctx context.Context) error {
		_, err := c.workstations.StartWorkstation(ctx, &workstationspb.StartWorkstationRequest{Name: ref.Name()})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to start workstation %s: %w", ref.Workstation, err)
	}
	return nil
}

// StopInstance requests a stop.
func (c *RealClient) StopInstance(ctx context.Context, ref InstanceRef) error {
	err := c.call(ctx, "workstations.StopWorkstation", func(ctx context.Context) error {
		_, err := c.workstations.StopWorkstation(ctx, &workstationspb.StopWorkstationRequest{Name: ref.Name()})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to stop workstation %s: %w", ref.Workstation, err)
	}
	return nil
}

package gcp

import (
	"context"
	"fmt"

	workstations "cloud.google.com/go/workstations/apiv1"
	"cloud.google.com/go/workstations/apiv1/workstationspb"
)

// GetCluster returns the cluster, or nil if it does not exist.
func (c *RealClient) GetCluster(ctx context.Context, ref ClusterRef) (*Cluster, error) {
	pb, err := getResource(ctx, c, "workstations.GetWorkstationCluster", func(ctx context.Context) (*workstationspb.WorkstationCluster, error) {
		return c.workstations.GetWorkstationCluster(ctx, &workstationspb.GetWorkstationClusterRequest{Name: ref.Name()})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster %s: %w", ref.Cluster, err)
	}
	if pb == nil {
		return nil, nil
	}
	return clusterFromPB(pb), nil
}

// CreateCluster creates the cluster and waits for it. Cluster creation
// commonly takes twenty minutes or more.
func (c *RealClient) CreateCluster(ctx context.Context, ref ClusterRef, spec ClusterSpec) (*Cluster, error) {
	const op = "workstations.CreateWorkstationCluster"
	req := &workstationspb.CreateWorkstationClusterRequest{
		Parent:               ref.Parent(),
		WorkstationClusterId: ref.Cluster,
		WorkstationCluster: &workstationspb.WorkstationCluster{
			Network:    spec.Network,
			Subnetwork: spec.Subnetwork,
			Labels:     spec.Labels,
		},
	}

	var lro *workstations.CreateWorkstationClusterOperation
	err := c.call(ctx, op, func(ctx context.Context) error {
		var err error
		lro, err = c.workstations.CreateWorkstationCluster(ctx, req)
		return err
	})
	if IsAlreadyExists(err) {
		return c.GetCluster(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster %s: %w", ref.Cluster, err)
	}

	pb, err := awaitOperation(ctx, c, op, func(ctx context.Context) (*workstationspb.WorkstationCluster, error) {
		return lro.Wait(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wait for cluster %s creation: %w", ref.Cluster, err)
	}
	return clusterFromPB(pb), nil
}

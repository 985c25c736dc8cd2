package orchestration

import (
	"context"
	"time"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/util/async"
)

// Describer is the read-only subset of the remote client used by Describe.
type Describer interface {
	GetCluster(ctx context.Context, ref gcp.ClusterRef) (*gcp.Cluster, error)
	GetConfig(ctx context.Context, ref gcp.ConfigRef) (*gcp.WorkstationConfig, error)
	GetInstance(ctx context.Context, ref gcp.InstanceRef) (*gcp.Instance, error)
}

// ResourceStatus reports whether one level of the hierarchy exists.
type ResourceStatus struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// Status is a point-in-time view of the workstation hierarchy.
type Status struct {
	Workstation string         `json:"workstation"`
	Project     string         `json:"project"`
	Region      string         `json:"region"`
	Cluster     ResourceStatus `json:"cluster"`
	Config      ResourceStatus `json:"config"`
	Instance    ResourceStatus `json:"instance"`
	Image       string         `json:"image,omitempty"`
	Host        string         `json:"host,omitempty"`
	State       gcp.State      `json:"state"`
	ObservedAt  time.Time      `json:"observedAt"`
}

// Describe reads the cluster, config and workstation concurrently. All
// read failures are returned joined; the partial status is returned with
// them.
func Describe(ctx context.Context, client Describer, cfg *config.Config) (*Status, error) {
	instanceRef := provisioning.InstanceRefOf(cfg)
	configRef := instanceRef.ConfigRef
	clusterRef := configRef.ClusterRef

	st := &Status{
		Workstation: cfg.Workstation.Name,
		Project:     cfg.Project,
		Region:      cfg.Region,
		Cluster:     ResourceStatus{Name: clusterRef.Cluster},
		Config:      ResourceStatus{Name: configRef.Config},
		Instance:    ResourceStatus{Name: instanceRef.Workstation},
		State:       gcp.StateUnknown,
	}

	var (
		cluster  *gcp.Cluster
		wsConfig *gcp.WorkstationConfig
		instance *gcp.Instance
	)
	tasks := []async.Task{
		{Name: "cluster", Func: func(ctx context.Context) (err error) {
			cluster, err = client.GetCluster(ctx, clusterRef)
			return err
		}},
		{Name: "config", Func: func(ctx context.Context) (err error) {
			wsConfig, err = client.GetConfig(ctx, configRef)
			return err
		}},
		{Name: "workstation", Func: func(ctx context.Context) (err error) {
			instance, err = client.GetInstance(ctx, instanceRef)
			return err
		}},
	}
	err := async.RunParallel(ctx, tasks)

	st.Cluster.Exists = cluster != nil
	if wsConfig != nil {
		st.Config.Exists = true
		st.Image = wsConfig.Spec.Image
	}
	if instance != nil {
		st.Instance.Exists = true
		st.Host = instance.Host
		if instance.State != "" {
			st.State = instance.State
		}
	}
	st.ObservedAt = time.Now().UTC()
	return st, err
}

package orchestration

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/imamik/wsup/internal/platform/gcp"
)

// controlPlane is a stateful stand-in for the remote API. Lifecycle
// transitions advance one step per GetInstance, so pollers see the
// intermediate states.
type controlPlane struct {
	mu sync.Mutex

	cluster  bool
	repo     bool
	config   *gcp.WorkstationConfig
	instance *gcp.Instance
	pending  []gcp.State
	policy   *gcp.Policy
	project  *gcp.Policy

	// observed holds every state returned by GetInstance, with "start" and
	// "stop" markers in call order.
	observed []string
}

func newControlPlane() *controlPlane {
	return &controlPlane{
		policy:  &gcp.Policy{Etag: []byte("v1")},
		project: &gcp.Policy{Etag: []byte("p1")},
	}
}

// withEverything marks every resource as present with the instance in state.
func (cp *controlPlane) withEverything(state gcp.State) *controlPlane {
	cp.cluster = true
	cp.repo = true
	cp.config = &gcp.WorkstationConfig{Name: "dev-config"}
	cp.instance = &gcp.Instance{Name: "dev", State: state, Host: "dev.cluster.example.dev"}
	return cp
}

func (cp *controlPlane) log(entry string) {
	cp.observed = append(cp.observed, entry)
}

func (cp *controlPlane) client() *gcp.MockClient {
	return &gcp.MockClient{
		GetClusterFunc: func(_ context.Context, ref gcp.ClusterRef) (*gcp.Cluster, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			if !cp.cluster {
				return nil, nil
			}
			return &gcp.Cluster{Name: ref.Name()}, nil
		},
		CreateClusterFunc: func(_ context.Context, ref gcp.ClusterRef, spec gcp.ClusterSpec) (*gcp.Cluster, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.cluster = true
			return &gcp.Cluster{Name: ref.Name(), Network: spec.Network, Subnetwork: spec.Subnetwork}, nil
		},
		GetRepositoryFunc: func(_ context.Context, ref gcp.RepositoryRef) (*gcp.Repository, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			if !cp.repo {
				return nil, nil
			}
			return &gcp.Repository{Name: ref.Name(), Format: gcp.FormatDocker}, nil
		},
		CreateRepositoryFunc: func(_ context.Context, ref gcp.RepositoryRef, spec gcp.RepositorySpec) (*gcp.Repository, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.repo = true
			return &gcp.Repository{Name: ref.Name(), Format: spec.Format}, nil
		},
		GetConfigFunc: func(context.Context, gcp.ConfigRef) (*gcp.WorkstationConfig, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			return cp.config, nil
		},
		CreateConfigFunc: func(_ context.Context, ref gcp.ConfigRef, spec gcp.ConfigSpec) (*gcp.WorkstationConfig, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.config = &gcp.WorkstationConfig{Name: ref.Config, Spec: spec}
			return cp.config, nil
		},
		UpdateConfigFunc: func(_ context.Context, ref gcp.ConfigRef, spec gcp.ConfigSpec) (*gcp.WorkstationConfig, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.config = &gcp.WorkstationConfig{Name: ref.Config, Spec: spec}
			return cp.config, nil
		},
		GetInstanceFunc: func(context.Context, gcp.InstanceRef) (*gcp.Instance, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			if cp.instance == nil {
				return nil, nil
			}
			if len(cp.pending) > 0 {
				cp.instance.State = cp.pending[0]
				cp.pending = cp.pending[1:]
			}
			cp.log(string(cp.instance.State))
			inst := *cp.instance
			return &inst, nil
		},
		CreateInstanceFunc: func(_ context.Context, ref gcp.InstanceRef, labels map[string]string) (*gcp.Instance, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.instance = &gcp.Instance{Name: ref.Workstation, State: gcp.StateStopped, Host: "dev.cluster.example.dev", Labels: labels}
			inst := *cp.instance
			return &inst, nil
		},
		StopInstanceFunc: func(context.Context, gcp.InstanceRef) error {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.log("stop")
			cp.pending = []gcp.State{gcp.StateStopping, gcp.StateStopping, gcp.StateStopped}
			return nil
		},
		StartInstanceFunc: func(context.Context, gcp.InstanceRef) error {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.log("start")
			cp.pending = []gcp.State{gcp.StateStarting, gcp.StateRunning}
			return nil
		},
		GetInstancePolicyFunc: func(context.Context, gcp.InstanceRef) (*gcp.Policy, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			return cp.policy.Clone(), nil
		},
		SetInstancePolicyFunc: func(_ context.Context, _ gcp.InstanceRef, p *gcp.Policy) (*gcp.Policy, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.policy = p.Clone()
			cp.policy.Etag = append(cp.policy.Etag, '+')
			return cp.policy.Clone(), nil
		},
		GetProjectPolicyFunc: func(context.Context, string) (*gcp.Policy, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			return cp.project.Clone(), nil
		},
		SetProjectPolicyFunc: func(_ context.Context, _ string, p *gcp.Policy) (*gcp.Policy, error) {
			cp.mu.Lock()
			defer cp.mu.Unlock()
			cp.project = p.Clone()
			return cp.project.Clone(), nil
		},
	}
}

// mutating filters a call log down to create/update/start/stop calls.
func mutating(calls []string) []string {
	return slices.DeleteFunc(slices.Clone(calls), func(c string) bool {
		return !strings.HasPrefix(c, "Create") && !strings.HasPrefix(c, "Update") &&
			c != "StartInstance" && c != "StopInstance"
	})
}

// creates filters a call log down to Create calls.
func creates(calls []string) []string {
	return slices.DeleteFunc(slices.Clone(calls), func(c string) bool {
		return !strings.HasPrefix(c, "Create")
	})
}

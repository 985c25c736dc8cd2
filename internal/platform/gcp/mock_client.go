package gcp

import (
	"context"
	"slices"
	"sync"
)

// MockClient is a mock implementation of RemoteClient. Unset functions
// behave as if nothing exists yet and every mutation succeeds. Every call
// is recorded by method name in order.
type MockClient struct {
	GetClusterFunc    func(ctx context.Context, ref ClusterRef) (*Cluster, error)
	CreateClusterFunc func(ctx context.Context, ref ClusterRef, spec ClusterSpec) (*Cluster, error)

	GetRepositoryFunc    func(ctx context.Context, ref RepositoryRef) (*Repository, error)
	CreateRepositoryFunc func(ctx context.Context, ref RepositoryRef, spec RepositorySpec) (*Repository, error)

	SubmitBuildFunc func(ctx context.Context, req BuildRequest) (*BuildResult, error)

	GetConfigFunc    func(ctx context.Context, ref ConfigRef) (*WorkstationConfig, error)
	CreateConfigFunc func(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error)
	UpdateConfigFunc func(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error)

	GetInstanceFunc    func(ctx context.Context, ref InstanceRef) (*Instance, error)
	CreateInstanceFunc func(ctx context.Context, ref InstanceRef, labels map[string]string) (*Instance, error)
	StartInstanceFunc  func(ctx context.Context, ref InstanceRef) error
	StopInstanceFunc   func(ctx context.Context, ref InstanceRef) error

	GetInstancePolicyFunc func(ctx context.Context, ref InstanceRef) (*Policy, error)
	SetInstancePolicyFunc func(ctx context.Context, ref InstanceRef, policy *Policy) (*Policy, error)

	GetProjectNumberFunc func(ctx context.Context, project string) (string, error)
	GetProjectPolicyFunc func(ctx context.Context, project string) (*Policy, error)
	SetProjectPolicyFunc func(ctx context.Context, project string, policy *Policy) (*Policy, error)

	ResolveHostnameFunc func(ctx context.Context, ref InstanceRef) (string, error)
	ProbeFunc           func(ctx context.Context, url string) (int, error)

	mu    sync.Mutex
	calls []string
}

// Ensure interface compliance
var _ RemoteClient = (*MockClient)(nil)

func (m *MockClient) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the recorded method names in call order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// CallCount returns how often method was called.
func (m *MockClient) CallCount(method string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == method {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (m *MockClient) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockClient) GetCluster(ctx context.Context, ref ClusterRef) (*Cluster, error) {
	m.record("GetCluster")
	if m.GetClusterFunc != nil {
		return m.GetClusterFunc(ctx, ref)
	}
	return nil, nil
}

func (m *MockClient) CreateCluster(ctx context.Context, ref ClusterRef, spec ClusterSpec) (*Cluster, error) {
	m.record("CreateCluster")
	if m.CreateClusterFunc != nil {
		return m.CreateClusterFunc(ctx, ref, spec)
	}
	return &Cluster{Name: ref.Name(), Network: spec.Network, Subnetwork: spec.Subnetwork, Labels: spec.Labels}, nil
}

func (m *MockClient) GetRepository(ctx context.Context, ref RepositoryRef) (*Repository, error) {
	m.record("GetRepository")
	if m.GetRepositoryFunc != nil {
		return m.GetRepositoryFunc(ctx, ref)
	}
	return nil, nil
}

func (m *MockClient) CreateRepository(ctx context.Context, ref RepositoryRef, spec RepositorySpec) (*Repository, error) {
	m.record("CreateRepository")
	if m.CreateRepositoryFunc != nil {
		return m.CreateRepositoryFunc(ctx, ref, spec)
	}
	return &Repository{Name: ref.Name(), Format: spec.Format, Description: spec.Description, Labels: spec.Labels}, nil
}

func (m *MockClient) SubmitBuild(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	m.record("SubmitBuild")
	if m.SubmitBuildFunc != nil {
		return m.SubmitBuildFunc(ctx, req)
	}
	return &BuildResult{ID: "mock-build", Status: "SUCCESS", Image: req.Image}, nil
}

func (m *MockClient) GetConfig(ctx context.Context, ref ConfigRef) (*WorkstationConfig, error) {
	m.record("GetConfig")
	if m.GetConfigFunc != nil {
		return m.GetConfigFunc(ctx, ref)
	}
	return nil, nil
}

func (m *MockClient) CreateConfig(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error) {
	m.record("CreateConfig")
	if m.CreateConfigFunc != nil {
		return m.CreateConfigFunc(ctx, ref, spec)
	}
	return &WorkstationConfig{Name: ref.Name(), Spec: spec}, nil
}

func (m *MockClient) UpdateConfig(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error) {
	m.record("UpdateConfig")
	if m.UpdateConfigFunc != nil {
		return m.UpdateConfigFunc(ctx, ref, spec)
	}
	return &WorkstationConfig{Name: ref.Name(), Spec: spec}, nil
}

func (m *MockClient) GetInstance(ctx context.Context, ref InstanceRef) (*Instance, error) {
	m.record("GetInstance")
	if m.GetInstanceFunc != nil {
		return m.GetInstanceFunc(ctx, ref)
	}
	return nil, nil
}

func (m *MockClient) CreateInstance(ctx context.Context, ref InstanceRef, labels map[string]string) (*Instance, error) {
	m.record("CreateInstance")
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, ref, labels)
	}
	return &Instance{Name: ref.Name(), State: StateStopped, Labels: labels}, nil
}

func (m *MockClient) StartInstance(ctx context.Context, ref InstanceRef) error {
	m.record("StartInstance")
	if m.StartInstanceFunc != nil {
		return m.StartInstanceFunc(ctx, ref)
	}
	return nil
}

func (m *MockClient) StopInstance(ctx context.Context, ref InstanceRef) error {
	m.record("StopInstance")
	if m.StopInstanceFunc != nil {
		return m.StopInstanceFunc(ctx, ref)
	}
	return nil
}

func (m *MockClient) GetInstancePolicy(ctx context.Context, ref InstanceRef) (*Policy, error) {
	m.record("GetInstancePolicy")
	if m.GetInstancePolicyFunc != nil {
		return m.GetInstancePolicyFunc(ctx, ref)
	}
	return &Policy{}, nil
}

func (m *MockClient) SetInstancePolicy(ctx context.Context, ref InstanceRef, policy *Policy) (*Policy, error) {
	m.record("SetInstancePolicy")
	if m.SetInstancePolicyFunc != nil {
		return m.SetInstancePolicyFunc(ctx, ref, policy)
	}
	return policy, nil
}

func (m *MockClient) GetProjectNumber(ctx context.Context, project string) (string, error) {
	m.record("GetProjectNumber")
	if m.GetProjectNumberFunc != nil {
		return m.GetProjectNumberFunc(ctx, project)
	}
	return "123456789012", nil
}

func (m *MockClient) GetProjectPolicy(ctx context.Context, project string) (*Policy, error) {
	m.record("GetProjectPolicy")
	if m.GetProjectPolicyFunc != nil {
		return m.GetProjectPolicyFunc(ctx, project)
	}
	return &Policy{}, nil
}

func (m *MockClient) SetProjectPolicy(ctx context.Context, project string, policy *Policy) (*Policy, error) {
	m.record("SetProjectPolicy")
	if m.SetProjectPolicyFunc != nil {
		return m.SetProjectPolicyFunc(ctx, project, policy)
	}
	return policy, nil
}

func (m *MockClient) ResolveHostname(ctx context.Context, ref InstanceRef) (string, error) {
	m.record("ResolveHostname")
	if m.ResolveHostnameFunc != nil {
		return m.ResolveHostnameFunc(ctx, ref)
	}
	return ref.Workstation + ".cluster-mock.cloudworkstations.dev", nil
}

func (m *MockClient) Probe(ctx context.Context, url string) (int, error) {
	m.record("Probe")
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, url)
	}
	return 200, nil
}

package gcp

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// State is the lifecycle state of a workstation instance, using the API's
// enum names.
type State string

// Instance states.
const (
	StateStarting State = "STATE_STARTING"
	StateRunning  State = "STATE_RUNNING"
	StateStopping State = "STATE_STOPPING"
	StateStopped  State = "STATE_STOPPED"
	StateUnknown  State = "STATE_UNKNOWN"
)

// ClusterRef identifies a workstation cluster.
type ClusterRef struct {
	Project string
	Region  string
	Cluster string
}

func (r ClusterRef) Parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", r.Project, r.Region)
}

// Name returns the full resource name.
func (r ClusterRef) Name() string {
	return fmt.Sprintf("%s/workstationClusters/%s", r.Parent(), r.Cluster)
}

// ConfigRef identifies a workstation config inside a cluster.
type ConfigRef struct {
	ClusterRef
	Config string
}

func (r ConfigRef) Name() string {
	return fmt.Sprintf("%s/workstationConfigs/%s", r.ClusterRef.Name(), r.Config)
}

// InstanceRef identifies a workstation instance inside a config.
type InstanceRef struct {
	ConfigRef
	Workstation string
}

func (r InstanceRef) Name() string {
	return fmt.Sprintf("%s/workstations/%s", r.ConfigRef.Name(), r.Workstation)
}

// RepositoryRef identifies an Artifact Registry repository.
type RepositoryRef struct {
	Project    string
	Region     string
	Repository string
}

func (r RepositoryRef) Parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", r.Project, r.Region)
}

func (r RepositoryRef) Name() string {
	return fmt.Sprintf("%s/repositories/%s", r.Parent(), r.Repository)
}

// Cluster is the observed state of a workstation cluster.
type Cluster struct {
	Name       string
	Network    string
	Subnetwork string
	Labels     map[string]string
}

// ClusterSpec holds the create-time parameters of a cluster. Clusters are
// never updated.
type ClusterSpec struct {
	Network    string
	Subnetwork string
	Labels     map[string]string
}

// Repository formats.
const (
	FormatDocker = "DOCKER"
)

type Repository struct {
	Name        string
	Format      string
	Description string
	Labels      map[string]string
}

type RepositorySpec struct {
	Format      string
	Description string
	Labels      map[string]string
}

// PortRange is an inclusive range of ports reachable on the workstation.
type PortRange struct {
	First int32
	Last  int32
}

// ConfigSpec is the full parameter set of a workstation config. Only Image,
// AllowedPorts and ServiceAccount are changed by UpdateConfig.
type ConfigSpec struct {
	MachineType    string
	DiskSizeGB     int32
	DiskType       string
	ReclaimPolicy  string
	ServiceAccount string
	Image          string
	AllowedPorts   []PortRange
	IdleTimeout    time.Duration
	RunningTimeout time.Duration
	Labels         map[string]string
}

// WorkstationConfig is the observed state of a config.
type WorkstationConfig struct {
	Name string
	Spec ConfigSpec
}

// Instance is the observed state of a workstation instance.
type Instance struct {
	Name   string
	State  State
	Host   string
	Labels map[string]string
}

// Binding maps a role to its members, optionally under a condition.
type Binding struct {
	Role      string
	Members   []string
	Condition *Condition
}

// Condition is an IAM condition expression (CEL).
type Condition struct {
	Title       string
	Description string
	Expression  string
}

// Policy is an IAM policy document. Etag is returned unchanged on write so
// the server can reject a stale read-modify-write.
type Policy struct {
	Version  int32
	Etag     []byte
	Bindings []Binding
}

// Clone returns a deep copy of p.
func (p *Policy) Clone() *Policy {
	if p == nil {
		return &Policy{}
	}
	out := &Policy{
		Version:  p.Version,
		Etag:     slices.Clone(p.Etag),
		Bindings: make([]Binding, 0, len(p.Bindings)),
	}
	for _, b := range p.Bindings {
		nb := Binding{Role: b.Role, Members: slices.Clone(b.Members)}
		if b.Condition != nil {
			cond := *b.Condition
			nb.Condition = &cond
		}
		out.Bindings = append(out.Bindings, nb)
	}
	return out
}

// BuildRequest describes a container build from a local source directory.
type BuildRequest struct {
	Project   string
	SourceDir string
	Image     string
	Timeout   time.Duration
	// Bucket and Object locate the uploaded source archive.
	Bucket string
	Object string
}

// BuildResult describes a finished build.
type BuildResult struct {
	ID     string
	Status string
	LogURL string
	Image  string
}

// ClusterManager defines the interface for workstation clusters.
type ClusterManager interface {
	// GetCluster returns nil, nil when the cluster does not exist.
	GetCluster(ctx context.Context, ref ClusterRef) (*Cluster, error)
	CreateCluster(ctx context.Context, ref ClusterRef, spec ClusterSpec) (*Cluster, error)
}

// RepositoryManager defines the interface for registry repositories.
type RepositoryManager interface {
	GetRepository(ctx context.Context, ref RepositoryRef) (*Repository, error)
	CreateRepository(ctx context.Context, ref RepositoryRef, spec RepositorySpec) (*Repository, error)
}

// BuildSubmitter builds and pushes container images.
type BuildSubmitter interface {
	// SubmitBuild uploads the source, runs the build and blocks until it
	// finishes. A build that does not succeed is returned as an error.
	SubmitBuild(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// ConfigManager defines the interface for workstation configs.
type ConfigManager interface {
	GetConfig(ctx context.Context, ref ConfigRef) (*WorkstationConfig, error)
	CreateConfig(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error)
	// UpdateConfig changes image, allowed ports and service account in
	// place. Other fields of spec are ignored.
	UpdateConfig(ctx context.Context, ref ConfigRef, spec ConfigSpec) (*WorkstationConfig, error)
}

// InstanceManager defines the interface for workstation instances.
type InstanceManager interface {
	GetInstance(ctx context.Context, ref InstanceRef) (*Instance, error)
	// CreateInstance blocks until the create operation completes.
	CreateInstance(ctx context.Context, ref InstanceRef, labels map[string]string) (*Instance, error)
	// StartInstance and StopInstance only issue the transition; callers
	// observe the outcome by polling GetInstance.
	StartInstance(ctx context.Context, ref InstanceRef) error
	StopInstance(ctx context.Context, ref InstanceRef) error
}

// PolicyManager reads and writes the IAM policy of an instance.
type PolicyManager interface {
	GetInstancePolicy(ctx context.Context, ref InstanceRef) (*Policy, error)
	SetInstancePolicy(ctx context.Context, ref InstanceRef, policy *Policy) (*Policy, error)
}

// ProjectManager resolves project metadata and project IAM.
type ProjectManager interface {
	GetProjectNumber(ctx context.Context, project string) (string, error)
	GetProjectPolicy(ctx context.Context, project string) (*Policy, error)
	SetProjectPolicy(ctx context.Context, project string, policy *Policy) (*Policy, error)
}

// Prober checks that a workstation answers on its public host.
type Prober interface {
	ResolveHostname(ctx context.Context, ref InstanceRef) (string, error)
	// Probe issues a GET and returns the HTTP status code.
	Probe(ctx context.Context, url string) (int, error)
}

// RemoteClient combines every capability the reconciler needs.
type RemoteClient interface {
	ClusterManager
	RepositoryManager
	BuildSubmitter
	ConfigManager
	InstanceManager
	PolicyManager
	ProjectManager
	Prober
}

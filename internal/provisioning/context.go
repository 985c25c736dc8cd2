package provisioning

import (
	"context"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
)

// Endpoint is the outcome of a successful reconcile.
type Endpoint struct {
	Workstation string    `json:"workstation"`
	Host        string    `json:"host,omitempty"`
	URL         string    `json:"url,omitempty"`
	State       gcp.State `json:"state"`
	Reachable   bool      `json:"reachable"`
}

// State holds the shared results of reconcile phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Infrastructure results
	ServiceAccount string // email the workstation VM runs as
	Cluster        *gcp.Cluster
	Repository     *gcp.Repository

	// Image resolved once per run
	Image string
	Build *gcp.BuildResult

	// Compute results
	Config        *gcp.WorkstationConfig
	ConfigCreated bool
	Instance      *gcp.Instance

	// Access results
	PolicyUpdated bool
	Endpoint      Endpoint
}

// NewState creates an empty reconcile state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a reconcile phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Client   gcp.RemoteClient
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new reconcile context. A nil observer discards all
// output.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	client gcp.RemoteClient,
	observer Observer,
) *Context {
	if observer == nil {
		observer = NewLogObserver(discardLogger())
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Client:   client,
		Observer: observer,
		Timeouts: config.LoadTimeouts(),
	}
}

// ClusterRefOf returns the reference of cfg's cluster.
func ClusterRefOf(cfg *config.Config) gcp.ClusterRef {
	return gcp.ClusterRef{
		Project: cfg.Project,
		Region:  cfg.Region,
		Cluster: cfg.Cluster.Name,
	}
}

// ConfigRefOf returns the reference of the workstation config derived from cfg.
func ConfigRefOf(cfg *config.Config) gcp.ConfigRef {
	return gcp.ConfigRef{ClusterRef: ClusterRefOf(cfg), Config: cfg.ConfigID()}
}

// InstanceRefOf returns the reference of cfg's workstation.
func InstanceRefOf(cfg *config.Config) gcp.InstanceRef {
	return gcp.InstanceRef{ConfigRef: ConfigRefOf(cfg), Workstation: cfg.Workstation.Name}
}

// ClusterRef returns the reference of the configured cluster.
func (c *Context) ClusterRef() gcp.ClusterRef {
	return ClusterRefOf(c.Config)
}

// ConfigRef returns the reference of the derived workstation config.
func (c *Context) ConfigRef() gcp.ConfigRef {
	return ConfigRefOf(c.Config)
}

// InstanceRef returns the reference of the configured workstation.
func (c *Context) InstanceRef() gcp.InstanceRef {
	return InstanceRefOf(c.Config)
}

// RepositoryRef returns the reference of the image repository.
func (c *Context) RepositoryRef() gcp.RepositoryRef {
	return gcp.RepositoryRef{
		Project:    c.Config.Project,
		Region:     c.Config.Region,
		Repository: c.Config.Image.Repository,
	}
}

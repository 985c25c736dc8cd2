package config

import "time"

// Config is the desired state of one workstation and its supporting
// resources.
type Config struct {
	Project string `mapstructure:"project" yaml:"project"`
	Region  string `mapstructure:"region" yaml:"region"`

	Cluster     ClusterConfig     `mapstructure:"cluster" yaml:"cluster"`
	Workstation WorkstationConfig `mapstructure:"workstation" yaml:"workstation"`
	Image       ImageConfig       `mapstructure:"image" yaml:"image"`
	Build       BuildConfig       `mapstructure:"build" yaml:"build"`
	Access      AccessConfig      `mapstructure:"access" yaml:"access"`
	Reconcile   ReconcileConfig   `mapstructure:"reconcile" yaml:"reconcile"`
}

// ClusterConfig identifies the workstation cluster. Network and subnetwork
// default to the project's "default" VPC when empty.
type ClusterConfig struct {
	Name       string `mapstructure:"name" yaml:"name"`
	Network    string `mapstructure:"network" yaml:"network,omitempty"`
	Subnetwork string `mapstructure:"subnetwork" yaml:"subnetwork,omitempty"`
}

// WorkstationConfig holds the instance name and the parameters of its
// workstation config.
type WorkstationConfig struct {
	Name           string            `mapstructure:"name" yaml:"name"`
	MachineType    string            `mapstructure:"machineType" yaml:"machineType"`
	DiskSizeGB     int32             `mapstructure:"diskSizeGB" yaml:"diskSizeGB"`
	DiskType       string            `mapstructure:"diskType" yaml:"diskType"`
	ReclaimPolicy  string            `mapstructure:"reclaimPolicy" yaml:"reclaimPolicy"`
	ServiceAccount string            `mapstructure:"serviceAccount" yaml:"serviceAccount,omitempty"`
	AllowedPorts   []string          `mapstructure:"allowedPorts" yaml:"allowedPorts"`
	IdleTimeout    time.Duration     `mapstructure:"idleTimeout" yaml:"idleTimeout,omitempty"`
	RunningTimeout time.Duration     `mapstructure:"runningTimeout" yaml:"runningTimeout,omitempty"`
	Labels         map[string]string `mapstructure:"labels" yaml:"labels,omitempty"`
}

// ImageConfig locates the container image. URL, when set, is used verbatim
// and the registry coordinates are ignored.
type ImageConfig struct {
	URL        string `mapstructure:"url" yaml:"url,omitempty"`
	Repository string `mapstructure:"repository" yaml:"repository"`
	Name       string `mapstructure:"name" yaml:"name"`
	Tag        string `mapstructure:"tag" yaml:"tag"`
}

type BuildConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	SourceDir string        `mapstructure:"sourceDir" yaml:"sourceDir"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// AccessConfig names the principal granted use of the workstation.
type AccessConfig struct {
	UserPrincipal string `mapstructure:"userPrincipal" yaml:"userPrincipal,omitempty"`
}

// ReconcileConfig tunes how the instance lifecycle is driven.
type ReconcileConfig struct {
	// WaitForRunning blocks after start until the instance reports RUNNING.
	WaitForRunning bool          `mapstructure:"waitForRunning" yaml:"waitForRunning"`
	Verify         bool          `mapstructure:"verify" yaml:"verify"`
	PollInterval   time.Duration `mapstructure:"pollInterval" yaml:"pollInterval"`
	// PollTimeout bounds each state wait. Zero waits until cancelled.
	PollTimeout time.Duration `mapstructure:"pollTimeout" yaml:"pollTimeout"`
}

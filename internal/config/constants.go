package config

import "time"

// Default values applied before the file, environment and flags.
const (
	DefaultRegion         = "us-central1"
	DefaultClusterName    = "workstation-cluster"
	DefaultRepository     = "workstations"
	DefaultImageName      = "workstation"
	DefaultImageTag       = "latest"
	DefaultMachineType    = "e2-standard-8"
	DefaultDiskSizeGB     = 200
	DefaultDiskType       = "pd-balanced"
	DefaultReclaimPolicy  = ReclaimDelete
	DefaultSourceDir      = "."
	DefaultPollInterval   = 10 * time.Second
	DefaultPollTimeout    = 20 * time.Minute
	DefaultBuildTimeout   = 20 * time.Minute
	DefaultConfigFileName = "wsup.yaml"
)

// Reclaim policies for the workstation home disk.
const (
	ReclaimDelete = "DELETE"
	ReclaimRetain = "RETAIN"
)

// DefaultAllowedPorts mirrors the ports opened by the bootstrap scripts:
// SSH, HTTP and the unprivileged range.
var DefaultAllowedPorts = []string{"22", "80", "1024-65535"}

// Role granted to the user principal on the workstation instance.
const WorkstationUserRole = "roles/workstations.user"

// Role granted to the compute service account on the project so the
// workstation VM can pull from Artifact Registry.
const RegistryReaderRole = "roles/artifactregistry.reader"

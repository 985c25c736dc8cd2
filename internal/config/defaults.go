package config

import (
	"slices"

	"github.com/spf13/viper"
)

// Default returns a configuration populated with every default and no
// identity (project, workstation name).
func Default() *Config {
	return &Config{
		Region: DefaultRegion,
		Cluster: ClusterConfig{
			Name: DefaultClusterName,
		},
		Workstation: WorkstationConfig{
			MachineType:   DefaultMachineType,
			DiskSizeGB:    DefaultDiskSizeGB,
			DiskType:      DefaultDiskType,
			ReclaimPolicy: DefaultReclaimPolicy,
			AllowedPorts:  slices.Clone(DefaultAllowedPorts),
		},
		Image: ImageConfig{
			Repository: DefaultRepository,
			Name:       DefaultImageName,
			Tag:        DefaultImageTag,
		},
		Build: BuildConfig{
			Enabled:   true,
			SourceDir: DefaultSourceDir,
			Timeout:   DefaultBuildTimeout,
		},
		Reconcile: ReconcileConfig{
			WaitForRunning: true,
			Verify:         true,
			PollInterval:   DefaultPollInterval,
			PollTimeout:    DefaultPollTimeout,
		},
	}
}

// setDefaults registers every default with v so that AutomaticEnv can see
// the keys.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("region", d.Region)
	v.SetDefault("cluster.name", d.Cluster.Name)
	v.SetDefault("cluster.network", "")
	v.SetDefault("cluster.subnetwork", "")

	v.SetDefault("workstation.machineType", d.Workstation.MachineType)
	v.SetDefault("workstation.diskSizeGB", d.Workstation.DiskSizeGB)
	v.SetDefault("workstation.diskType", d.Workstation.DiskType)
	v.SetDefault("workstation.reclaimPolicy", d.Workstation.ReclaimPolicy)
	v.SetDefault("workstation.allowedPorts", d.Workstation.AllowedPorts)
	v.SetDefault("workstation.idleTimeout", d.Workstation.IdleTimeout)
	v.SetDefault("workstation.runningTimeout", d.Workstation.RunningTimeout)

	v.SetDefault("image.repository", d.Image.Repository)
	v.SetDefault("image.name", d.Image.Name)
	v.SetDefault("image.tag", d.Image.Tag)

	v.SetDefault("build.enabled", d.Build.Enabled)
	v.SetDefault("build.sourceDir", d.Build.SourceDir)
	v.SetDefault("build.timeout", d.Build.Timeout)

	v.SetDefault("reconcile.waitForRunning", d.Reconcile.WaitForRunning)
	v.SetDefault("reconcile.verify", d.Reconcile.Verify)
	v.SetDefault("reconcile.pollInterval", d.Reconcile.PollInterval)
	v.SetDefault("reconcile.pollTimeout", d.Reconcile.PollTimeout)
}

package config

import (
	"github.com/imamik/wsup/internal/util/naming"
)

// ImageRef returns the fully qualified image reference for this run. An
// explicit image.url wins; otherwise the Artifact Registry coordinate is
// assembled. An empty result means the image is unresolved.
func (c *Config) ImageRef() string {
	if c.Image.URL != "" {
		return c.Image.URL
	}
	if c.Project == "" || c.Region == "" || c.Image.Repository == "" || c.Image.Name == "" {
		return ""
	}
	tag := c.Image.Tag
	if tag == "" {
		tag = DefaultImageTag
	}
	return naming.ImageReference(c.Region, c.Project, c.Image.Repository, c.Image.Name, tag)
}

// ConfigID returns the workstation config id, always "<workstation>-config".
func (c *Config) ConfigID() string {
	return naming.ConfigID(c.Workstation.Name)
}

func (c *Config) Network() string {
	if c.Cluster.Network != "" {
		return c.Cluster.Network
	}
	return naming.DefaultNetwork(c.Project)
}

func (c *Config) Subnetwork() string {
	if c.Cluster.Subnetwork != "" {
		return c.Cluster.Subnetwork
	}
	return naming.DefaultSubnetwork(c.Project, c.Region)
}

// PortRanges returns the parsed allowed ports. Validate guarantees they
// parse, so errors are not expected after Load.
func (c *Config) PortRanges() ([]PortRange, error) {
	return ParsePortRanges(c.Workstation.AllowedPorts)
}

// UserMember returns the IAM member for the configured user principal, or
// "" when none is configured.
func (c *Config) UserMember() string {
	if c.Access.UserPrincipal == "" {
		return ""
	}
	return naming.UserMember(c.Access.UserPrincipal)
}

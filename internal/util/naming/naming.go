package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var resourceIDPattern = regexp.MustCompile(`^[a-z]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ConfigID returns the workstation config id bound to a workstation.
func ConfigID(workstation string) string {
	return fmt.Sprintf("%s-config", workstation)
}

// DefaultNetwork is the VPC used when no network is configured.
func DefaultNetwork(project string) string {
	return fmt.Sprintf("projects/%s/global/networks/default", project)
}

// DefaultSubnetwork is the subnetwork used when none is configured.
func DefaultSubnetwork(project, region string) string {
	return fmt.Sprintf("projects/%s/regions/%s/subnetworks/default", project, region)
}

func ComputeServiceAccount(projectNumber string) string {
	return fmt.Sprintf("%s-compute@developer.gserviceaccount.com", projectNumber)
}

// ServiceAccountMember formats an IAM member for a service account email.
// Values that already carry a member type prefix are returned unchanged.
func ServiceAccountMember(email string) string {
	if strings.Contains(email, ":") {
		return email
	}
	return "serviceAccount:" + email
}

// UserMember formats an IAM member for a user email.
func UserMember(email string) string {
	if strings.Contains(email, ":") {
		return email
	}
	return "user:" + email
}

func StagingBucket(project string) string {
	return fmt.Sprintf("%s_cloudbuild", project)
}

// SourceObject names the uploaded build context for one run.
func SourceObject(workstation string, at time.Time) string {
	return fmt.Sprintf("source/%s-%d.tgz", workstation, at.Unix())
}

// RegistryHost is the Artifact Registry docker host for a region.
func RegistryHost(region string) string {
	return fmt.Sprintf("%s-docker.pkg.dev", region)
}

// ImageReference joins the registry coordinates into a pullable reference.
func ImageReference(region, project, repository, image, tag string) string {
	return fmt.Sprintf("%s/%s/%s/%s:%s", RegistryHost(region), project, repository, image, tag)
}

// IsValidResourceID reports whether id is usable as a workstation,
// cluster or config id (lower-case DNS label, at most 63 characters).
func IsValidResourceID(id string) bool {
	return resourceIDPattern.MatchString(id)
}

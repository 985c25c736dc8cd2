// Package infrastructure provides the first reconcile phase: the
// project-level IAM bootstrap, the workstation cluster and the Artifact
// Registry repository.
//
// Clusters and repositories are created when absent and never updated.
package infrastructure

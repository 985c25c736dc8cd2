// Package gcp provides the Remote Resource Client: a wrapper around the
// Google Cloud control-plane APIs behind the workstation lifecycle.
//
// # Architecture
//
// The package is organized into domain-specific modules:
//
//   - client.go: capability interfaces, resource references and value types
//   - real_client.go: SDK client construction, rate limiting, retry and LRO waits
//   - cluster.go, workstation_config.go, instance.go: Cloud Workstations resources
//   - repository.go: Artifact Registry repositories
//   - build.go, archive.go: source upload and Cloud Build submission
//   - iam.go, project.go: instance and project IAM, project number lookup
//   - probe.go: host resolution and the HTTPS reachability probe
//   - errors.go: gRPC status classification
//   - mock_client.go: function-field mock with a call log for tests
//
// # Absence
//
// Every Get method returns (nil, nil) when the resource does not exist, so
// callers branch on presence without inspecting errors.
//
// # Retry and Timeout Configuration
//
// Reads that fail with UNAVAILABLE, RESOURCE_EXHAUSTED or DEADLINE_EXCEEDED
// are retried with exponential backoff; everything else fails immediately.
// Mutations are never retried. Long-running operations are bounded by
// WSUP_TIMEOUT_OPERATION (default 15m); builds are bounded by their own
// timeout. Control-plane calls are rate limited to 10 per second by default.
package gcp

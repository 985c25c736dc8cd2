// Package provisioning provides shared types, interfaces, and the state
// poller for workstation reconciliation.
//
// # Subpackages
//
//   - infrastructure/: project IAM bootstrap, workstation cluster, registry repository
//   - image/: container image build
//   - compute/: workstation config and instance lifecycle
//   - access/: instance IAM policy merge and reachability check
//
// # Core Types
//
// Context carries configuration, state, the remote client, and the observer.
// Phase defines a reconcile step with Name() and Provision() methods.
// State accumulates results from each phase (cluster, image, config, instance, endpoint).
// AwaitState blocks until a workstation reports a lifecycle state.
package provisioning

// Package orchestration coordinates a workstation reconcile.
//
// It delegates to the phase provisioners in internal/provisioning
// subpackages, defines their order, and owns the preflight check that runs
// before any remote call.
//
// # Workflow
//
// The Reconciler executes the following steps in order:
//  1. Preflight - configuration validation and image reference resolution
//  2. Infrastructure - project IAM bootstrap (best-effort), cluster, registry repository
//  3. Image - Cloud Build of the source directory
//  4. Compute - workstation config (create or update), workstation (create or restart)
//  5. Access - user authorization and reachability check (best-effort)
//
// # Usage
//
//	reconciler := orchestration.NewReconciler(client, cfg, orchestration.WithObserver(obs))
//	endpoint, err := reconciler.Reconcile(ctx)
//
// The reconciler is idempotent: a second run with the same configuration
// creates nothing and only updates the config and cycles the workstation.
package orchestration

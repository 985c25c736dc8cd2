// Package async provides utilities for parallel task execution with
// error collection.
//
// [RunParallel] runs independent read-only operations concurrently, such
// as the cluster, config and instance describes behind "wsup status".
// The reconciler itself never fans out.
package async

// Package access grants the configured user access to the workstation and
// checks that its public host answers.
//
// Policy edits are read-modify-write against the IAM policy of the instance
// or project. The merge functions are pure; the etag read is always sent back
// with the write so a concurrent change is rejected by the server and
// surfaced as a provisioning.PolicyWriteConflict.
package access

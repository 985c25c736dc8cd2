// Package naming derives Google Cloud resource identifiers for a workstation.
//
// Everything wsup creates is named deterministically from the project, the
// region and the workstation name, so a re-run finds what an earlier run
// created. The workstation config id is always "<workstation>-config".
package naming

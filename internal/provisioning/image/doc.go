// Package image builds the workstation container image with Cloud Build
// and pushes it to the resolved image reference.
package image

// Package labels provides consistent labeling for Google Cloud resources
// created by wsup.
//
// Google Cloud label keys and values are restricted to lower-case letters,
// digits, underscores and dashes, so the builder sanitizes values before
// they reach the API.
package labels

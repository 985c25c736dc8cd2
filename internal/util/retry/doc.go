// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max attempts,
// initial delay, maximum delay and multiplier. It is used for Google Cloud
// control-plane reads and for the IDE archive download. Errors wrapped with
// [Fatal] stop the loop immediately.
package retry

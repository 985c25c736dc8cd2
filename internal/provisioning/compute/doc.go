// Package compute reconciles the workstation config and the workstation
// instance.
//
// The config is created when absent and otherwise updated in place (image,
// allowed ports, service account). An absent instance is created and left
// as created. An existing instance is always cycled: stop, wait for
// STATE_STOPPED, start, and optionally wait for STATE_RUNNING, so that the
// new image takes effect. Start is never issued before STATE_STOPPED has
// been observed.
package compute

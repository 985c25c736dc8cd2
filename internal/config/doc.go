// Package config defines the desired state of a workstation and how it is
// loaded.
//
// A [Config] is assembled once per command from defaults, a wsup.yaml file,
// the environment and command-line overrides, validated, and then passed by
// pointer to every provisioning phase. Nothing mutates it after [Load]
// returns. Derived values such as the image reference and the config id are
// computed from it on demand.
package config

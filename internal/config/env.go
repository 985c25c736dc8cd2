package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces the generic environment overrides, e.g.
// WSUP_RECONCILE_POLLINTERVAL.
const EnvPrefix = "WSUP"

// envBinding maps a config key to the environment names the provisioning
// scripts have always used, checked in order after the WSUP_ form.
type envBinding struct {
	Key   string
	Names []string
}

var envBindings = []envBinding{
	{Key: "project", Names: []string{"PROJECT_ID", "GOOGLE_CLOUD_PROJECT"}},
	{Key: "region", Names: []string{"REGION"}},
	{Key: "cluster.name", Names: []string{"CLUSTER_NAME"}},
	{Key: "workstation.name", Names: []string{"WORKSTATION_NAME"}},
	{Key: "workstation.machineType", Names: []string{"MACHINE_TYPE"}},
	{Key: "workstation.serviceAccount", Names: []string{"SERVICE_ACCOUNT"}},
	{Key: "image.url", Names: []string{"IMAGE_URL"}},
	{Key: "image.repository", Names: []string{"REPO_NAME"}},
	{Key: "image.name", Names: []string{"IMAGE_NAME"}},
	{Key: "image.tag", Names: []string{"IMAGE_TAG"}},
	{Key: "access.userPrincipal", Names: []string{"USER_PRINCIPAL"}},
}

// EnvNames lists every plain environment variable the loader consults.
func EnvNames() []string {
	var names []string
	for _, b := range envBindings {
		names = append(names, b.Names...)
	}
	return names
}

func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range envBindings {
		args := append([]string{b.Key, envKey(b.Key)}, b.Names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b.Key, err)
		}
	}
	return nil
}

package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/wsup/internal/config"
)

func TestInit_WritesWizardResult(t *testing.T) {
	out := saveAndRestoreFactories(t)

	runWizard = func(context.Context) (*config.Config, error) {
		cfg := testConfig()
		cfg.Access.UserPrincipal = "dev@example.com"
		return cfg, nil
	}
	path := filepath.Join(t.TempDir(), "wsup.yaml")

	require.NoError(t, Init(context.Background(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "project: my-project")
	assert.Contains(t, string(data), "name: dev-ws")

	text := out.String()
	assert.Contains(t, text, "Configuration saved!")
	assert.Contains(t, text, "user:dev@example.com")
	assert.Contains(t, text, "wsup apply -c "+path)
	assert.NotContains(t, text, "already exists")
}

func TestInit_WarnsOnOverwrite(t *testing.T) {
	out := saveAndRestoreFactories(t)

	fileExists = func(string) bool { return true }
	runWizard = func(context.Context) (*config.Config, error) { return testConfig(), nil }
	saveConfig = func(*config.Config, string) error { return nil }

	require.NoError(t, Init(context.Background(), "wsup.yaml"))
	assert.Contains(t, out.String(), "wsup.yaml already exists")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreFactories(t)

	runWizard = func(context.Context) (*config.Config, error) {
		return nil, errors.New("user aborted")
	}
	saveConfig = func(*config.Config, string) error {
		t.Fatal("config must not be written")
		return nil
	}

	err := Init(context.Background(), "wsup.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_SaveError(t *testing.T) {
	saveAndRestoreFactories(t)

	runWizard = func(context.Context) (*config.Config, error) { return testConfig(), nil }
	saveConfig = func(*config.Config, string) error { return errors.New("read-only file system") }

	err := Init(context.Background(), "wsup.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config")
}

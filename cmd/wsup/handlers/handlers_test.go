package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-logr/logr"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
)

// closableMock adds Close to the mock client.
type closableMock struct {
	*gcp.MockClient
	closed bool
}

func (c *closableMock) Close() error {
	c.closed = true
	return nil
}

type fakeReconciler struct {
	endpoint *provisioning.Endpoint
	err      error
	calls    int
}

func (f *fakeReconciler) Reconcile(context.Context) (*provisioning.Endpoint, error) {
	f.calls++
	return f.endpoint, f.err
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Project = "my-project"
	cfg.Workstation.Name = "dev-ws"
	return cfg
}

// saveAndRestoreFactories swaps every factory for a test default and
// restores the originals when the test ends.
func saveAndRestoreFactories(t *testing.T) *bytes.Buffer {
	t.Helper()

	origLoadConfig := loadConfig
	origNewClient := newClient
	origNewReconciler := newReconciler
	origNewLogger := newLogger
	origWriteMetrics := writeMetrics
	origIsTTY := isInteractiveTTY
	origStdout := stdout
	origDescribe := describe
	origRunWatchTUI := runWatchTUI
	origFileExists := fileExists
	origRunWizard := runWizard
	origSaveConfig := saveConfig
	origRunLauncher := runLauncher

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		newClient = origNewClient
		newReconciler = origNewReconciler
		newLogger = origNewLogger
		writeMetrics = origWriteMetrics
		isInteractiveTTY = origIsTTY
		stdout = origStdout
		describe = origDescribe
		runWatchTUI = origRunWatchTUI
		fileExists = origFileExists
		runWizard = origRunWizard
		saveConfig = origSaveConfig
		runLauncher = origRunLauncher
	})

	var out bytes.Buffer
	stdout = &out
	newLogger = func(bool) (logr.Logger, func()) { return logr.Discard(), func() {} }
	isInteractiveTTY = func() bool { return false }
	writeMetrics = func(string) error { return nil }
	loadConfig = func(config.LoadOptions) (*config.Config, error) { return testConfig(), nil }
	newClient = func(context.Context, *config.Timeouts) (RemoteClient, error) {
		return &closableMock{MockClient: &gcp.MockClient{}}, nil
	}
	return &out
}

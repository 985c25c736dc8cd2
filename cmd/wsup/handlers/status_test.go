package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/orchestration"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/ui/tui"
)

func sampleStatus() *orchestration.Status {
	return &orchestration.Status{
		Workstation: "dev-ws",
		Project:     "my-project",
		Region:      "us-central1",
		Cluster:     orchestration.ResourceStatus{Name: "workstation-cluster", Exists: true},
		Config:      orchestration.ResourceStatus{Name: "dev-ws-config", Exists: true},
		Instance:    orchestration.ResourceStatus{Name: "dev-ws", Exists: true},
		Image:       "us-central1-docker.pkg.dev/my-project/workstations/dev-ws:latest",
		Host:        "dev-ws.example.dev",
		State:       gcp.StateRunning,
		ObservedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func stubDescribe(st *orchestration.Status, err error) {
	describe = func(context.Context, orchestration.Describer, *config.Config) (*orchestration.Status, error) {
		return st, err
	}
}

func TestStatus_Text(t *testing.T) {
	out := saveAndRestoreFactories(t)
	stubDescribe(sampleStatus(), nil)

	require.NoError(t, Status(context.Background(), StatusOptions{}))

	text := out.String()
	assert.Contains(t, text, "Workstation: dev-ws (my-project/us-central1)")
	assert.Contains(t, text, "State:       RUNNING")
	assert.Contains(t, text, "Host:        dev-ws.example.dev")
	assert.Contains(t, text, "present")
}

func TestStatus_StyledOnTTY(t *testing.T) {
	out := saveAndRestoreFactories(t)
	isInteractiveTTY = func() bool { return true }
	stubDescribe(sampleStatus(), nil)

	require.NoError(t, Status(context.Background(), StatusOptions{Output: OutputText}))
	assert.Contains(t, out.String(), "wsup: dev-ws (us-central1)")
}

func TestStatus_JSON(t *testing.T) {
	out := saveAndRestoreFactories(t)
	stubDescribe(sampleStatus(), nil)

	require.NoError(t, Status(context.Background(), StatusOptions{Output: OutputJSON}))

	var got orchestration.Status
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "dev-ws", got.Workstation)
	assert.Equal(t, gcp.StateRunning, got.State)
	assert.True(t, got.Config.Exists)
}

func TestStatus_YAML(t *testing.T) {
	out := saveAndRestoreFactories(t)
	stubDescribe(sampleStatus(), nil)

	require.NoError(t, Status(context.Background(), StatusOptions{Output: OutputYAML}))

	assert.Contains(t, out.String(), "workstation: dev-ws")
	assert.Contains(t, out.String(), "state: STATE_RUNNING")

	var got orchestration.Status
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "dev-ws-config", got.Config.Name)
}

func TestStatus_InvalidOutput(t *testing.T) {
	saveAndRestoreFactories(t)
	clientCreated := false
	newClient = func(context.Context, *config.Timeouts) (RemoteClient, error) {
		clientCreated = true
		return nil, errors.New("unexpected")
	}

	err := Status(context.Background(), StatusOptions{Output: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
	assert.False(t, clientCreated)
}

func TestStatus_PartialFailurePrintsAndFails(t *testing.T) {
	out := saveAndRestoreFactories(t)
	st := sampleStatus()
	st.Instance.Exists = false
	st.State = gcp.StateUnknown
	st.Host = ""
	stubDescribe(st, errors.New("workstation: permission denied"))

	err := Status(context.Background(), StatusOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Contains(t, out.String(), "absent")
	assert.Contains(t, out.String(), "UNKNOWN")
}

func TestStatus_WatchPlainPrintsLinesUntilCancelled(t *testing.T) {
	out := saveAndRestoreFactories(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	describe = func(context.Context, orchestration.Describer, *config.Config) (*orchestration.Status, error) {
		calls++
		if calls == 3 {
			cancel()
		}
		return sampleStatus(), nil
	}

	err := Status(ctx, StatusOptions{Watch: true, Interval: time.Millisecond})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, "dev-ws: RUNNING (resources 3/3) host=dev-ws.example.dev")
	}
}

func TestStatus_WatchJSONIsOneObjectPerLine(t *testing.T) {
	out := saveAndRestoreFactories(t)
	isInteractiveTTY = func() bool { return true }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	describe = func(context.Context, orchestration.Describer, *config.Config) (*orchestration.Status, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return sampleStatus(), nil
	}
	runWatchTUI = func(context.Context, tui.FetchFunc, string, string, time.Duration) error {
		t.Fatal("json watch must not start the TUI")
		return nil
	}

	require.NoError(t, Status(ctx, StatusOptions{Watch: true, Output: OutputJSON, Interval: time.Millisecond}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	var got orchestration.Status
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
}

func TestStatus_WatchOnTTYUsesTUI(t *testing.T) {
	saveAndRestoreFactories(t)
	isInteractiveTTY = func() bool { return true }
	stubDescribe(sampleStatus(), nil)

	var gotWorkstation string
	var gotInterval time.Duration
	runWatchTUI = func(ctx context.Context, fetch tui.FetchFunc, workstation, _ string, interval time.Duration) error {
		gotWorkstation = workstation
		gotInterval = interval
		st, err := fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, gcp.StateRunning, st.State)
		return nil
	}

	require.NoError(t, Status(context.Background(), StatusOptions{Watch: true}))
	assert.Equal(t, "dev-ws", gotWorkstation)
	assert.Equal(t, defaultWatchInterval, gotInterval)
}

func TestStatusSummaryLine(t *testing.T) {
	st := sampleStatus()
	st.Config.Exists = false
	st.Host = ""
	assert.Equal(t, "[03:04:05] dev-ws: RUNNING (resources 2/3)", statusSummaryLine(st))
}

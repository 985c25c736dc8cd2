package orchestration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
)

func statusConfig() *config.Config {
	cfg := config.Default()
	cfg.Project = "proj"
	cfg.Workstation.Name = "dev"
	return cfg
}

func TestDescribe_AllPresent(t *testing.T) {
	t.Parallel()
	client := newControlPlane().withEverything(gcp.StateRunning).client()
	client.GetConfigFunc = func(_ context.Context, ref gcp.ConfigRef) (*gcp.WorkstationConfig, error) {
		return &gcp.WorkstationConfig{Name: ref.Name(), Spec: gcp.ConfigSpec{Image: "img:1"}}, nil
	}

	st, err := Describe(context.Background(), client, statusConfig())

	require.NoError(t, err)
	assert.True(t, st.Cluster.Exists)
	assert.True(t, st.Config.Exists)
	assert.True(t, st.Instance.Exists)
	assert.Equal(t, "workstation-cluster", st.Cluster.Name)
	assert.Equal(t, "dev-config", st.Config.Name)
	assert.Equal(t, "img:1", st.Image)
	assert.Equal(t, gcp.StateRunning, st.State)
	assert.Equal(t, "dev.cluster.example.dev", st.Host)
	assert.False(t, st.ObservedAt.IsZero())
	assert.ElementsMatch(t, []string{"GetCluster", "GetConfig", "GetInstance"}, client.Calls())
}

func TestDescribe_NothingPresent(t *testing.T) {
	t.Parallel()
	client := &gcp.MockClient{}

	st, err := Describe(context.Background(), client, statusConfig())

	require.NoError(t, err)
	assert.False(t, st.Cluster.Exists)
	assert.False(t, st.Config.Exists)
	assert.False(t, st.Instance.Exists)
	assert.Equal(t, gcp.StateUnknown, st.State)
}

func TestDescribe_PartialFailure(t *testing.T) {
	t.Parallel()
	client := &gcp.MockClient{
		GetClusterFunc: func(_ context.Context, ref gcp.ClusterRef) (*gcp.Cluster, error) {
			return &gcp.Cluster{Name: ref.Name()}, nil
		},
		GetInstanceFunc: func(context.Context, gcp.InstanceRef) (*gcp.Instance, error) {
			return nil, status.Error(codes.PermissionDenied, "denied")
		},
	}

	st, err := Describe(context.Background(), client, statusConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "workstation: ")
	assert.True(t, gcp.IsPermissionDenied(err))
	require.NotNil(t, st)
	assert.True(t, st.Cluster.Exists)
	assert.False(t, st.Instance.Exists)
}

func TestDescribe_UsesReconcileRefs(t *testing.T) {
	t.Parallel()
	cfg := statusConfig()
	cfg.Cluster.Name = "team-cluster"
	pCtx := provisioning.NewContext(context.Background(), cfg, &gcp.MockClient{}, nil)

	var cluster, wsConfig, instance string
	client := &gcp.MockClient{
		GetClusterFunc: func(_ context.Context, ref gcp.ClusterRef) (*gcp.Cluster, error) {
			cluster = ref.Name()
			return nil, nil
		},
		GetConfigFunc: func(_ context.Context, ref gcp.ConfigRef) (*gcp.WorkstationConfig, error) {
			wsConfig = ref.Name()
			return nil, nil
		},
		GetInstanceFunc: func(_ context.Context, ref gcp.InstanceRef) (*gcp.Instance, error) {
			instance = ref.Name()
			return nil, nil
		},
	}

	_, err := Describe(context.Background(), client, cfg)

	require.NoError(t, err)
	assert.Equal(t, pCtx.ClusterRef().Name(), cluster)
	assert.Equal(t, pCtx.ConfigRef().Name(), wsConfig)
	assert.Equal(t, pCtx.InstanceRef().Name(), instance)
}

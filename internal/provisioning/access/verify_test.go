package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/wsup/internal/platform/gcp"
)

func TestVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		resolve   func(context.Context, gcp.InstanceRef) (string, error)
		probe     func(context.Context, string) (int, error)
		wantErr   string
		reachable bool
		wantURL   string
	}{
		{
			name:      "2xx is reachable",
			reachable: true,
			wantURL:   "https://dev.cluster-mock.cloudworkstations.dev",
		},
		{
			name:    "non-2xx",
			probe:   func(context.Context, string) (int, error) { return 502, nil },
			wantErr: "returned HTTP 502",
			wantURL: "https://dev.cluster-mock.cloudworkstations.dev",
		},
		{
			name:    "network error",
			probe:   func(context.Context, string) (int, error) { return 0, errors.New("connection refused") },
			wantErr: "connection refused",
			wantURL: "https://dev.cluster-mock.cloudworkstations.dev",
		},
		{
			name:    "no host",
			resolve: func(context.Context, gcp.InstanceRef) (string, error) { return "", errors.New("no host assigned") },
			wantErr: "failed to resolve host of dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &gcp.MockClient{ResolveHostnameFunc: tt.resolve, ProbeFunc: tt.probe}

			r, err := Verify(context.Background(), client, testRef)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.reachable, r.Reachable())
			assert.Equal(t, tt.wantURL, r.URL)
		})
	}
}

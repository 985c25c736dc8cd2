package gcp

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ResolveHostname returns the public host of a workstation.
func (c *RealClient) ResolveHostname(ctx context.Context, ref InstanceRef) (string, error) {
	inst, err := c.GetInstance(ctx, ref)
	if err != nil {
		return "", err
	}
	if inst == nil {
		return "", fmt.Errorf("workstation %s not found", ref.Workstation)
	}
	if inst.Host == "" {
		return "", fmt.Errorf("workstation %s has no host assigned", ref.Workstation)
	}
	return inst.Host, nil
}

// Probe issues a GET against url and returns the final status code.
func (c *RealClient) Probe(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build probe request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", url, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	return resp.StatusCode, nil
}

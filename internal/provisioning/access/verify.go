package access

import (
	"context"
	"fmt"

	"github.com/imamik/wsup/internal/platform/gcp"
)

// Reachability is the outcome of a verification probe.
type Reachability struct {
	Host   string
	URL    string
	Status int
}

// Reachable reports whether the probe got a 2xx answer.
func (r Reachability) Reachable() bool {
	return r.Status >= 200 && r.Status < 300
}

// Verify resolves the public host of the instance and issues one GET against
// it. A non-2xx answer is returned as an error together with the partial
// result.
func Verify(ctx context.Context, client gcp.Prober, ref gcp.InstanceRef) (Reachability, error) {
	var r Reachability

	host, err := client.ResolveHostname(ctx, ref)
	if err != nil {
		return r, fmt.Errorf("failed to resolve host of %s: %w", ref.Workstation, err)
	}
	r.Host = host
	r.URL = "https://" + host

	status, err := client.Probe(ctx, r.URL)
	if err != nil {
		return r, err
	}
	r.Status = status
	if !r.Reachable() {
		return r, fmt.Errorf("probe %s returned HTTP %d", r.URL, status)
	}
	return r, nil
}

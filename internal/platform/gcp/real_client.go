package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	artifactregistry "cloud.google.com/go/artifactregistry/apiv1"
	cloudbuild "cloud.google.com/go/cloudbuild/apiv1/v2"
	resourcemanager "cloud.google.com/go/resourcemanager/apiv3"
	"cloud.google.com/go/storage"
	workstations "cloud.google.com/go/workstations/apiv1"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/util/retry"
)

// Default control-plane rate limit.
const (
	DefaultRateLimit = rate.Limit(10)
	DefaultBurst     = 20
)

// RealClient implements RemoteClient using the Google Cloud Go SDKs.
type RealClient struct {
	workstations *workstations.Client
	registry     *artifactregistry.Client
	builds       *cloudbuild.Client
	storage      *storage.Client
	projects     *resourcemanager.ProjectsClient

	clientOpts []option.ClientOption
	httpClient *http.Client
	limiter    *rate.Limiter
	timeouts   *config.Timeouts
	now        func() time.Time
}

var _ RemoteClient = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithClientOptions passes SDK options (endpoint, credentials) to every
// underlying service client.
func WithClientOptions(opts ...option.ClientOption) ClientOption {
	return func(c *RealClient) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// WithHTTPClient sets the HTTP client used by the reachability probe.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithRateLimit bounds control-plane calls to r per second with burst b.
func WithRateLimit(r rate.Limit, b int) ClientOption {
	return func(c *RealClient) {
		c.limiter = rate.NewLimiter(r, b)
	}
}

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// NewRealClient dials every service wsup talks to. Call Close when done.
func NewRealClient(ctx context.Context, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{
		limiter:  rate.NewLimiter(DefaultRateLimit, DefaultBurst),
		timeouts: config.LoadTimeouts(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeouts.Probe}
	}

	var err error
	if c.workstations, err = workstations.NewClient(ctx, c.clientOpts...); err != nil {
		return nil, fmt.Errorf("failed to create workstations client: %w", err)
	}
	if c.registry, err = artifactregistry.NewClient(ctx, c.clientOpts...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create artifact registry client: %w", err)
	}
	if c.builds, err = cloudbuild.NewClient(ctx, c.clientOpts...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create cloud build client: %w", err)
	}
	if c.storage, err = storage.NewClient(ctx, c.clientOpts...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if c.projects, err = resourcemanager.NewProjectsClient(ctx, c.clientOpts...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create resource manager client: %w", err)
	}

	return c, nil
}

// Close releases every underlying connection.
func (c *RealClient) Close() error {
	var errs []error
	if c.workstations != nil {
		errs = append(errs, c.workstations.Close())
	}
	if c.registry != nil {
		errs = append(errs, c.registry.Close())
	}
	if c.builds != nil {
		errs = append(errs, c.builds.Close())
	}
	if c.storage != nil {
		errs = append(errs, c.storage.Close())
	}
	if c.projects != nil {
		errs = append(errs, c.projects.Close())
	}
	return errors.Join(errs...)
}

// call runs fn once, rate limited and instrumented.
func (c *RealClient) call(ctx context.Context, op string, fn func(context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	start := time.Now()
	err := fn(ctx)
	observeCall(op, start, err)
	return err
}

// read runs an idempotent call, retrying transient failures with backoff.
// Any other error is returned as the SDK reported it.
func (c *RealClient) read(ctx context.Context, op string, fn func(context.Context) error) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		return c.call(ctx, op, fn)
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithRetryIf(isTransient))
}

// getResource reads a resource and maps NotFound to (nil, nil).
func getResource[T any](ctx context.Context, c *RealClient, op string, fn func(context.Context) (*T, error)) (*T, error) {
	var out *T
	err := c.read(ctx, op, func(ctx context.Context) error {
		res, err := fn(ctx)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// awaitOperation blocks on a long-running operation, bounded by the
// operation timeout.
func awaitOperation[T any](ctx context.Context, c *RealClient, op string, wait func(context.Context) (T, error)) (T, error) {
	if c.timeouts.Operation > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeouts.Operation)
		defer cancel()
	}

	start := time.Now()
	res, err := wait(ctx)
	observeCall(op+".wait", start, err)
	return res, err
}

package orchestration

import (
	"context"
	"time"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/provisioning/access"
	"github.com/imamik/wsup/internal/provisioning/compute"
	"github.com/imamik/wsup/internal/provisioning/image"
	"github.com/imamik/wsup/internal/provisioning/infrastructure"
)

// Reconciler orchestrates the workstation reconcile workflow.
type Reconciler struct {
	client   gcp.RemoteClient
	config   *config.Config
	observer provisioning.Observer
	timeouts *config.Timeouts
	state    *provisioning.State

	// Phases
	infraProvisioner   *infrastructure.Provisioner
	imageProvisioner   *image.Provisioner
	computeProvisioner *compute.Provisioner
	accessProvisioner  *access.Provisioner
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithObserver sets the observer that receives progress output.
func WithObserver(o provisioning.Observer) Option {
	return func(r *Reconciler) {
		r.observer = o
	}
}

// WithTimeouts overrides the environment-derived timeouts.
func WithTimeouts(t *config.Timeouts) Option {
	return func(r *Reconciler) {
		r.timeouts = t
	}
}

// NewReconciler creates a new orchestration reconciler. cfg is not
// modified.
func NewReconciler(client gcp.RemoteClient, cfg *config.Config, opts ...Option) *Reconciler {
	r := &Reconciler{
		client:             client,
		config:             cfg,
		state:              provisioning.NewState(),
		infraProvisioner:   infrastructure.NewProvisioner(),
		imageProvisioner:   image.NewProvisioner(),
		computeProvisioner: compute.NewProvisioner(),
		accessProvisioner:  access.NewProvisioner(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile brings the cluster, repository, image, config and workstation to
// the desired state and returns how to reach the workstation. A failure
// aborts the run; resources created before it are left in place.
func (r *Reconciler) Reconcile(ctx context.Context) (*provisioning.Endpoint, error) {
	start := time.Now()

	img, err := Preflight(r.config)
	if err != nil {
		recordReconcile(start, err)
		return nil, err
	}

	// Nothing observed by an earlier run carries over.
	r.state = provisioning.NewState()
	r.state.Image = img

	observer := r.observer
	if observer != nil {
		observer = observer.WithFields(map[string]string{"workstation": r.config.Workstation.Name})
	}

	pCtx := provisioning.NewContext(ctx, r.config, r.client, observer)
	pCtx.State = r.state
	if r.timeouts != nil {
		pCtx.Timeouts = r.timeouts
	}

	phases := []provisioning.Phase{
		r.infraProvisioner,
		r.imageProvisioner,
		r.computeProvisioner,
		r.accessProvisioner,
	}

	err = provisioning.RunPhases(pCtx, phases)
	recordReconcile(start, err)
	if err != nil {
		return nil, err
	}

	endpoint := r.state.Endpoint
	return &endpoint, nil
}

// State returns what the most recent Reconcile observed, including partial
// results of a failed run.
func (r *Reconciler) State() *provisioning.State {
	return r.state
}

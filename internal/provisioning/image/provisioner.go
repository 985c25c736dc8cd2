package image

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
	"github.com/imamik/wsup/internal/util/naming"
)

const phase = "image"

// Provisioner builds the workstation image.
type Provisioner struct {
	now func() time.Time
}

// NewProvisioner creates a new image provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{now: time.Now}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. It blocks until
// the build finishes; any failure is a *provisioning.BuildError.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	img := ctx.State.Image
	if img == "" {
		img = ctx.Config.ImageRef()
	}
	if img == "" {
		return &provisioning.ConfigurationError{Field: "image", Reason: "image reference is unresolved"}
	}
	ctx.State.Image = img

	if !ctx.Config.Build.Enabled {
		ctx.Observer.Printf("[%s] Build disabled, expecting %s to be pushed already", phase, img)
		return nil
	}

	req, err := p.buildRequest(ctx, img)
	if err != nil {
		return &provisioning.BuildError{Image: img, Err: err}
	}

	ctx.Observer.Printf("[%s] Building %s from %s (timeout %v)...", phase, img, req.SourceDir, req.Timeout)
	start := p.now()
	result, err := ctx.Client.SubmitBuild(ctx, req)
	if err != nil {
		return &provisioning.BuildError{Image: img, Err: err}
	}

	ctx.State.Build = result
	ctx.Observer.Printf("[%s] Build %s finished with %s in %v", phase, result.ID, result.Status, p.now().Sub(start).Round(time.Second))
	return nil
}

func (p *Provisioner) buildRequest(ctx *provisioning.Context, img string) (gcp.BuildRequest, error) {
	dir, err := filepath.Abs(ctx.Config.Build.SourceDir)
	if err != nil {
		return gcp.BuildRequest{}, fmt.Errorf("failed to resolve source directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return gcp.BuildRequest{}, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return gcp.BuildRequest{}, fmt.Errorf("source directory %s is not a directory", dir)
	}

	return gcp.BuildRequest{
		Project:   ctx.Config.Project,
		SourceDir: dir,
		Image:     img,
		Timeout:   ctx.Config.Build.Timeout,
		Bucket:    naming.StagingBucket(ctx.Config.Project),
		Object:    naming.SourceObject(ctx.Config.Workstation.Name, p.now()),
	}, nil
}

package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	cloudbuild "cloud.google.com/go/cloudbuild/apiv1/v2"
	"cloud.google.com/go/cloudbuild/apiv1/v2/cloudbuildpb"
	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/imamik/wsup/internal/util/naming"
)

const dockerBuilder = "gcr.io/cloud-builders/docker"

// buildWaitMargin covers queueing before the build's own timeout starts.
const buildWaitMargin = 5 * time.Minute

// SubmitBuild uploads req.SourceDir to the staging bucket, runs
// "docker build" in Cloud Build and pushes req.Image. It blocks until the
// build reaches a terminal status.
func (c *RealClient) SubmitBuild(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	const op = "cloudbuild.CreateBuild"
	if req.Bucket == "" {
		req.Bucket = naming.StagingBucket(req.Project)
	}
	if req.Object == "" {
		req.Object = naming.SourceObject("build", c.now())
	}

	if err := c.ensureBucket(ctx, req.Project, req.Bucket); err != nil {
		return nil, err
	}
	if err := c.uploadSource(ctx, req); err != nil {
		return nil, err
	}

	build := &cloudbuildpb.Build{
		Source: &cloudbuildpb.Source{
			Source: &cloudbuildpb.Source_StorageSource{
				StorageSource: &cloudbuildpb.StorageSource{Bucket: req.Bucket, Object: req.Object},
			},
		},
		Steps: []*cloudbuildpb.BuildStep{{
			Name: dockerBuilder,
			Args: []string{"build", "-t", req.Image, "."},
		}},
		Images:  []string{req.Image},
		Timeout: durationOrNil(req.Timeout),
		Tags:    []string{"wsup"},
	}

	var lro *cloudbuild.CreateBuildOperation
	err := c.call(ctx, op, func(ctx context.Context) error {
		var err error
		lro, err = c.builds.CreateBuild(ctx, &cloudbuildpb.CreateBuildRequest{ProjectId: req.Project, Build: build})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit build: %w", err)
	}

	waitCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, req.Timeout+buildWaitMargin)
		defer cancel()
	}

	start := time.Now()
	finished, err := lro.Wait(waitCtx)
	observeCall(op+".wait", start, err)

	result := &BuildResult{Image: req.Image}
	if finished == nil {
		if md, mdErr := lro.Metadata(); mdErr == nil {
			finished = md.GetBuild()
		}
	}
	if finished != nil {
		result.ID = finished.GetId()
		result.Status = finished.GetStatus().String()
		result.LogURL = finished.GetLogUrl()
	}

	if err != nil {
		return result, fmt.Errorf("build %s failed (logs: %s): %w", result.ID, result.LogURL, err)
	}
	if finished.GetStatus() != cloudbuildpb.Build_SUCCESS {
		return result, fmt.Errorf("build %s finished with status %s (logs: %s)", result.ID, result.Status, result.LogURL)
	}
	return result, nil
}

// ensureBucket creates the staging bucket when it is missing.
func (c *RealClient) ensureBucket(ctx context.Context, project, bucket string) error {
	handle := c.storage.Bucket(bucket)

	err := c.read(ctx, "storage.GetBucket", func(ctx context.Context) error {
		_, err := handle.Attrs(ctx)
		return err
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("failed to check staging bucket %s: %w", bucket, err)
	}

	err = c.call(ctx, "storage.CreateBucket", func(ctx context.Context) error {
		return handle.Create(ctx, project, &storage.BucketAttrs{
			UniformBucketLevelAccess: storage.UniformBucketLevelAccess{Enabled: true},
		})
	})
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create staging bucket %s: %w", bucket, err)
	}
	return nil
}

func (c *RealClient) uploadSource(ctx context.Context, req BuildRequest) error {
	err := c.call(ctx, "storage.Upload", func(ctx context.Context) error {
		w := c.storage.Bucket(req.Bucket).Object(req.Object).NewWriter(ctx)
		w.ContentType = "application/gzip"
		if err := WriteSourceArchive(w, req.SourceDir); err != nil {
			_ = w.Close()
			return err
		}
		return w.Close()
	})
	if err != nil {
		return fmt.Errorf("failed to upload source to gs://%s/%s: %w", req.Bucket, req.Object, err)
	}
	return nil
}

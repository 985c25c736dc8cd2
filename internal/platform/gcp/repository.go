package gcp

import (
	"context"
	"fmt"

	artifactregistry "cloud.google.com/go/artifactregistry/apiv1"
	"cloud.google.com/go/artifactregistry/apiv1/artifactregistrypb"
)

// GetRepository returns the repository, or nil if it does not exist.
func (c *RealClient) GetRepository(ctx context.Context, ref RepositoryRef) (*Repository, error) {
	pb, err := getResource(ctx, c, "artifactregistry.GetRepository", func(ctx context.Context) (*artifactregistrypb.Repository, error) {
		return c.registry.GetRepository(ctx, &artifactregistrypb.GetRepositoryRequest{Name: ref.Name()})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get repository %s: %w", ref.Repository, err)
	}
	if pb == nil {
		return nil, nil
	}
	return repositoryFromPB(pb), nil
}

// CreateRepository creates the repository and waits for it.
func (c *RealClient) CreateRepository(ctx context.Context, ref RepositoryRef, spec RepositorySpec) (*Repository, error) {
	const op = "artifactregistry.CreateRepository"
	format, ok := artifactregistrypb.Repository_Format_value[spec.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported repository format %q", spec.Format)
	}
	req := &artifactregistrypb.CreateRepositoryRequest{
		Parent:       ref.Parent(),
		RepositoryId: ref.Repository,
		Repository: &artifactregistrypb.Repository{
			Format:      artifactregistrypb.Repository_Format(format),
			Description: spec.Description,
			Labels:      spec.Labels,
		},
	}

	var lro *artifactregistry.CreateRepositoryOperation
	err := c.call(ctx, op, func(ctx context.Context) error {
		var err error
		lro, err = c.registry.CreateRepository(ctx, req)
		return err
	})
	if IsAlreadyExists(err) {
		return c.GetRepository(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", ref.Repository, err)
	}

	pb, err := awaitOperation(ctx, c, op, func(ctx context.Context) (*artifactregistrypb.Repository, error) {
		return lro.Wait(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wait for repository %s creation: %w", ref.Repository, err)
	}
	return repositoryFromPB(pb), nil
}

func repositoryFromPB(pb *artifactregistrypb.Repository) *Repository {
	return &Repository{
		Name:        pb.GetName(),
		Format:      pb.GetFormat().String(),
		Description: pb.GetDescription(),
		Labels:      pb.GetLabels(),
	}
}

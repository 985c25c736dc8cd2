package config

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/wsup/internal/util/naming"
)

// Validation errors for the interactive wizard.
var (
	errProjectRequired     = errors.New("project id is required")
	errProjectInvalid      = errors.New("project id must be 6-30 lowercase letters, digits or hyphens, starting with a letter")
	errWorkstationRequired = errors.New("workstation name is required")
	errWorkstationInvalid  = errors.New("workstation name must be a lowercase DNS label")
	errPrincipalInvalid    = errors.New("principal must be an email address or a typed member such as group:devs@example.com")
)

var projectIDRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// Regions offered by the wizard. Any Cloud Workstations region is accepted
// in wsup.yaml.
var wizardRegions = []string{
	"us-central1", "us-east1", "us-west1", "europe-west1", "europe-west4", "asia-northeast1",
}

var wizardMachineTypes = []string{
	"e2-standard-4", "e2-standard-8", "e2-standard-16", "n2-standard-8", "n2-standard-16",
}

// RunWizard prompts for the values wsup cannot default and returns a
// complete configuration. The context is used for cancellation support
// (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Config, error) {
	cfg := Default()

	if err := runIdentityGroup(ctx, cfg); err != nil {
		return nil, fmt.Errorf("project identity: %w", err)
	}
	if err := runWorkstationGroup(ctx, cfg); err != nil {
		return nil, fmt.Errorf("workstation: %w", err)
	}
	if err := runImageGroup(ctx, cfg); err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	if err := runAccessGroup(ctx, cfg); err != nil {
		return nil, fmt.Errorf("access: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runIdentityGroup(ctx context.Context, cfg *Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("Google Cloud project that hosts the workstation").
				Placeholder("my-project").
				Value(&cfg.Project).
				Validate(validateProjectID),
			huh.NewSelect[string]().
				Title("Region").
				Options(huh.NewOptions(wizardRegions...)...).
				Value(&cfg.Region),
		).Title("Project"),
	).RunWithContext(ctx)
}

func runWorkstationGroup(ctx context.Context, cfg *Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workstation Name").
				Description("The config will be named <workstation>-config").
				Placeholder("dev-box").
				Value(&cfg.Workstation.Name).
				Validate(validateWorkstationName),
			huh.NewInput().
				Title("Cluster Name").
				Value(&cfg.Cluster.Name).
				Validate(validateWorkstationName),
			huh.NewSelect[string]().
				Title("Machine Type").
				Options(huh.NewOptions(wizardMachineTypes...)...).
				Value(&cfg.Workstation.MachineType),
		).Title("Workstation"),
	).RunWithContext(ctx)
}

func runImageGroup(ctx context.Context, cfg *Config) error {
	build := cfg.Build.Enabled

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Build the image from a local Dockerfile?").
				Value(&build),
		).Title("Image"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}
	cfg.Build.Enabled = build

	if !build {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Image URL").
					Description("Fully qualified reference of a pushed image").
					Value(&cfg.Image.URL).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return errors.New("image url is required when the build is disabled")
						}
						return nil
					}),
			).Title("Image"),
		).RunWithContext(ctx)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Source Directory").Value(&cfg.Build.SourceDir),
			huh.NewInput().Title("Repository").Value(&cfg.Image.Repository),
			huh.NewInput().Title("Image Name").Value(&cfg.Image.Name),
			huh.NewInput().Title("Tag").Value(&cfg.Image.Tag),
		).Title("Image"),
	).RunWithContext(ctx)
}

func runAccessGroup(ctx context.Context, cfg *Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User Principal (Optional)").
				Description("Granted roles/workstations.user on the workstation").
				Placeholder("you@example.com").
				Value(&cfg.Access.UserPrincipal).
				Validate(validatePrincipal),
		).Title("Access"),
	).RunWithContext(ctx)
}

func validateProjectID(s string) error {
	if s == "" {
		return errProjectRequired
	}
	if !projectIDRegex.MatchString(s) {
		return errProjectInvalid
	}
	return nil
}

func validateWorkstationName(s string) error {
	if s == "" {
		return errWorkstationRequired
	}
	if !naming.IsValidResourceID(s) {
		return errWorkstationInvalid
	}
	return nil
}

func validatePrincipal(s string) error {
	if s == "" {
		return nil
	}
	if _, email, typed := strings.Cut(s, ":"); typed {
		s = email
	}
	if !strings.Contains(s, "@") {
		return errPrincipalInvalid
	}
	return nil
}

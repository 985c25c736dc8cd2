package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/wsup/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration form.
	runWizard = config.RunWizard

	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	cfg, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "wsup - Cloud Workstations from a single config")
	fmt.Fprintln(stdout, "==============================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard asks for the values wsup cannot default.")
	fmt.Fprintln(stdout, "Everything else can be tuned in the generated YAML.")
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Workstation Summary")
	fmt.Fprintln(stdout, "-------------------")
	fmt.Fprintf(stdout, "  Project:      %s\n", cfg.Project)
	fmt.Fprintf(stdout, "  Region:       %s\n", cfg.Region)
	fmt.Fprintf(stdout, "  Cluster:      %s\n", cfg.Cluster.Name)
	fmt.Fprintf(stdout, "  Workstation:  %s\n", cfg.Workstation.Name)
	fmt.Fprintf(stdout, "  Machine:      %s\n", cfg.Workstation.MachineType)
	fmt.Fprintf(stdout, "  Image:        %s\n", cfg.ImageRef())
	if member := cfg.UserMember(); member != "" {
		fmt.Fprintf(stdout, "  User:         %s\n", member)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintf(stdout, "  wsup apply -c %s\n", outputPath)
	fmt.Fprintf(stdout, "  wsup status -c %s --watch\n", outputPath)
}

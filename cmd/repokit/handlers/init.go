package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/util/naming"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("wizard produced an invalid configuration: %w", err)
	}

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Repository Summary")
	fmt.Fprintln(stdout, "------------------")
	fmt.Fprintf(stdout, "  Application:   %s\n", cfg.Application.Name)
	fmt.Fprintf(stdout, "  Stack:         %s\n", cfg.Stack.Name)
	fmt.Fprintf(stdout, "  Repository:    %s (branch %s)\n", cfg.Repository.Name, cfg.Repository.Branch)
	fmt.Fprintf(stdout, "  Approval rule: %s\n", naming.ApprovalRuleTemplate(cfg.Application.Name))
	fmt.Fprintf(stdout, "  Reviewer:      %s\n", enabled(cfg.Repository.CodeGuruReviewer))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintf(stdout, "  1. Review %s if needed\n", outputPath)
	fmt.Fprintln(stdout, "  2. Synthesize the stack:")
	fmt.Fprintln(stdout, "     repokit synth --resolve-account")
	fmt.Fprintln(stdout)
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

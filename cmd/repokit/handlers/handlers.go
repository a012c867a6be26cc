// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/provisioning"
	"github.com/imamik/repokit/internal/util/retry"
)

// Log formats accepted by --log-format.
const (
	LogFormatConsole    = "console"
	LogFormatStructured = "structured"
)

// DefaultOutputDir is where synth writes its artifacts.
const DefaultOutputDir = "cdk.out"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// findConfigFile locates repokit.yaml when no path is given.
	findConfigFile = config.FindConfigFile

	// loadConfigFile loads a config with defaults applied.
	loadConfigFile = config.LoadWithoutValidation

	// stdout receives summaries.
	stdout io.Writer = os.Stdout

	// stderr receives structured logs.
	stderr io.Writer = os.Stderr

	// isInteractiveTTY reports whether summaries may be styled.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// loadConfig resolves the config path and loads it without validation so
// that account resolution can run first.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, "", err
		}
		path = found
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

// newObserver returns the observer for the requested log format.
func newObserver(format string) (provisioning.Observer, error) {
	switch format {
	case "", LogFormatConsole:
		log.SetOutput(stderr)
		return provisioning.NewConsoleObserver(), nil
	case LogFormatStructured:
		logger := funcr.NewJSON(func(obj string) {
			fmt.Fprintln(stderr, obj)
		}, funcr.Options{LogTimestamp: true})
		return provisioning.NewLogrObserver(logger.WithName("repokit")), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, LogFormatConsole, LogFormatStructured)
	}
}

// logRetry reports every failed attempt of operation that will be retried.
func logRetry(observer provisioning.Observer, operation string) retry.Option {
	return retry.WithOnRetry(func(attempt int, err error) {
		observer.Printf("Retrying %s (attempt %d): %v", operation, attempt, err)
	})
}

// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/repokit/cmd/repokit/handlers"
)

// logFormat is bound to the persistent --log-format flag.
var logFormat string

// Root returns the root command for the repokit CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "repokit",
		Short:         "Synthesize CodeCommit repositories with review and PR checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", handlers.LogFormatConsole,
		"Log format: console or structured")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Synth())
	cmd.AddCommand(Publish())

	// Utility commands
	cmd.AddCommand(Whoami())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/repokit/cmd/repokit/handlers"
)

// Validate returns the command that checks a configuration file.
func Validate() *cobra.Command {
	var (
		configPath string
		checkTools bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a repository configuration",
		Long: `Load the configuration, apply defaults and report every problem.

Without --config, repokit.yaml is searched in the current directory
and its parents.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(configPath, checkTools)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&checkTools, "check-tools", false, "Also look up the aws and git tools used to deploy")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/repokit/cmd/repokit/handlers"
	"github.com/imamik/repokit/internal/config"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "repokit.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a repository configuration",
		Long: `Interactively create a repository configuration file.

The wizard asks for the application name and CDK qualifier, the
repository name and branch, whether a CodeGuru reviewer is attached
and how the pull-request check builds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}

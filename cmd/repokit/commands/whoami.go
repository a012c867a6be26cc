package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/repokit/cmd/repokit/handlers"
)

// Whoami returns the command that prints the resolved AWS identity.
func Whoami() *cobra.Command {
	var (
		region  string
		profile string
	)

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the AWS account and region synth would target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Whoami(cmd.Context(), region, profile)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "AWS region")
	cmd.Flags().StringVar(&profile, "profile", "", "AWS shared config profile")

	return cmd
}

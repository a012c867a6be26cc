package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/repokit/cmd/repokit/handlers"
)

// Publish returns the command that synthesizes and uploads the artifacts.
func Publish() *cobra.Command {
	opts := handlers.PublishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Synthesize and upload the template to the artifacts bucket",
		Long: `Synthesize the stack and upload the template and buildspec to the
bucket configured under artifacts. Uploads run concurrently and are
retried with exponential backoff.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.LogFormat = logFormat
			return handlers.Publish(cmd.Context(), opts)
		},
	}

	bindSynthFlags(cmd, &opts.SynthOptions)
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Number of parallel uploads (default 4)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "AWS shared config profile")

	return cmd
}

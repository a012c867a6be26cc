package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/repokit/cmd/repokit/handlers"
	"github.com/imamik/repokit/internal/platform/cfn"
)

// Synth returns the command that renders the CloudFormation template.
//
// Flags:
//
//	--config, -c: Path to configuration file (auto-detected when empty)
//	--output, -o: Output directory (default "cdk.out")
//	--format: Template format, yaml or json
//	--metrics-textfile: Write Prometheus metrics to this file
//	--resolve-account: Fill a missing account and region through STS
func Synth() *cobra.Command {
	opts := handlers.SynthOptions{}

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the repository stack template",
		Long: `Synthesize the CloudFormation template and the pull-request buildspec.

The template is written to <output>/<stack>.template.<format> and the
buildspec to <output>/buildspec.yml. The stack account and region are
taken from the configuration, then from CDK_DEFAULT_ACCOUNT,
CDK_DEFAULT_REGION and AWS_REGION. Use --resolve-account to look them
up with the current AWS credentials instead. When either is still unset
the stack is environment-agnostic and the parameter-read grant uses the
AWS::AccountId and AWS::Region pseudo-parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.LogFormat = logFormat
			return handlers.Synth(cmd.Context(), opts)
		},
	}

	bindSynthFlags(cmd, &opts)

	return cmd
}

func bindSynthFlags(cmd *cobra.Command, opts *handlers.SynthOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", handlers.DefaultOutputDir, "Output directory")
	cmd.Flags().StringVar(&opts.Format, "format", cfn.FormatYAML, "Template format: yaml or json")
	cmd.Flags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.ResolveAccount, "resolve-account", false, "Resolve a missing account and region through STS")
}

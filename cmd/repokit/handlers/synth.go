package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/metrics"
	"github.com/imamik/repokit/internal/orchestration"
	"github.com/imamik/repokit/internal/platform/awsenv"
	"github.com/imamik/repokit/internal/provisioning"
	"github.com/imamik/repokit/internal/util/retry"
)

// SynthOptions holds the flags shared by synth and publish.
type SynthOptions struct {
	ConfigPath      string
	OutputDir       string
	Format          string
	MetricsTextfile string
	ResolveAccount  bool
	LogFormat       string
}

// identityResolver matches awsenv.Resolver.
type identityResolver interface {
	Identity(ctx context.Context) (*awsenv.Identity, error)
	Apply(ctx context.Context, cfg *config.Config) (*awsenv.Identity, error)
}

var (
	// newResolver creates an STS-backed identity resolver.
	newResolver = func(ctx context.Context, opts awsenv.Options) (identityResolver, error) {
		return awsenv.NewResolver(ctx, opts)
	}
)

// synthRun is the outcome of a synthesis shared by synth and publish.
type synthRun struct {
	config   *config.Config
	result   *orchestration.Result
	recorder *metrics.Recorder
	observer provisioning.Observer
}

// Synth synthesizes the stack and writes the template and buildspec.
func Synth(ctx context.Context, opts SynthOptions) error {
	run, err := synthesize(ctx, opts)
	if err != nil {
		return err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	paths, err := run.result.WriteFiles(outputDir)
	if err != nil {
		return err
	}

	if err := writeMetrics(run.recorder, opts.MetricsTextfile); err != nil {
		return err
	}

	fmt.Fprint(stdout, renderSynthSummary(run.result, paths, isInteractiveTTY()))
	return nil
}

// synthesize loads the configuration, optionally resolves the account and
// runs the synthesizer. Metrics are written even when synthesis fails.
func synthesize(ctx context.Context, opts SynthOptions) (*synthRun, error) {
	cfg, _, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	observer, err := newObserver(opts.LogFormat)
	if err != nil {
		return nil, err
	}

	if opts.ResolveAccount && (cfg.Stack.Account == "" || cfg.Stack.Region == "") {
		if err := resolveAccount(ctx, cfg, observer); err != nil {
			return nil, err
		}
	}

	recorder := metrics.NewRecorder(cfg.Application.Name)
	result, err := orchestration.NewSynthesizer(cfg,
		orchestration.WithObserver(recorder.Observer(observer)),
		orchestration.WithFormat(opts.Format),
	).Synthesize(ctx)
	if err != nil {
		if werr := writeMetrics(recorder, opts.MetricsTextfile); werr != nil {
			observer.Printf("Warning: %v", werr)
		}
		return nil, err
	}
	recorder.RecordTemplate(result.Template)

	return &synthRun{
		config:   cfg,
		result:   result,
		recorder: recorder,
		observer: observer,
	}, nil
}

func resolveAccount(ctx context.Context, cfg *config.Config, observer provisioning.Observer) error {
	resolver, err := newResolver(ctx, awsenv.Options{
		Region:       cfg.Stack.Region,
		RetryOptions: []retry.Option{logRetry(observer, "caller identity lookup")},
	})
	if err != nil {
		return fmt.Errorf("failed to resolve account: %w", err)
	}
	id, err := resolver.Apply(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve account: %w", err)
	}
	observer.Printf("Resolved stack environment %s/%s as %s", cfg.Stack.Account, cfg.Stack.Region, id.ARN)
	return nil
}

func writeMetrics(recorder *metrics.Recorder, path string) error {
	if path == "" {
		return nil
	}
	return recorder.WriteTextfile(path)
}

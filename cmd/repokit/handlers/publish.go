package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/repokit/internal/orchestration"
	"github.com/imamik/repokit/internal/platform/cfn"
	"github.com/imamik/repokit/internal/platform/s3"
	"github.com/imamik/repokit/internal/util/retry"
)

// PublishOptions holds the publish flags.
type PublishOptions struct {
	SynthOptions

	Concurrency int
	Profile     string
}

// artifactStore matches the S3 client operations publish needs.
type artifactStore interface {
	s3.ObjectPutter
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	Region() string
}

var (
	// newArtifactStore creates the S3 client for the artifacts bucket.
	newArtifactStore = func(ctx context.Context, opts s3.Options) (artifactStore, error) {
		return s3.NewClient(ctx, opts)
	}

	// uploadRetryOptions tunes the per-object retry.
	uploadRetryOptions []retry.Option
)

// Publish synthesizes the stack and uploads the template and buildspec to
// the configured artifacts bucket. Files are also written locally when an
// output directory is given.
func Publish(ctx context.Context, opts PublishOptions) error {
	run, err := synthesize(ctx, opts.SynthOptions)
	if err != nil {
		return err
	}

	cfg := run.config
	if !cfg.HasArtifacts() {
		return fmt.Errorf("artifacts.bucket is not configured")
	}

	if opts.OutputDir != "" {
		if _, err := run.result.WriteFiles(opts.OutputDir); err != nil {
			return err
		}
	}

	store, err := newArtifactStore(ctx, s3.Options{
		Region:  cfg.Artifacts.Region,
		Profile: opts.Profile,
	})
	if err != nil {
		return err
	}

	exists, err := store.BucketExists(ctx, cfg.Artifacts.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check artifacts bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("artifacts bucket %s does not exist", cfg.Artifacts.Bucket)
	}

	artifacts := artifactsOf(run.result)
	publisher := s3.NewPublisher(store, cfg.Artifacts.Bucket, cfg.Artifacts.Prefix,
		s3.WithConcurrency(opts.Concurrency),
		s3.WithRetryOptions(logRetry(run.observer, "upload")),
		s3.WithRetryOptions(uploadRetryOptions...),
	)

	run.observer.Printf("Publishing %d artifacts to s3://%s in %s", len(artifacts), cfg.Artifacts.Bucket, store.Region())
	uris, err := publisher.Publish(ctx, artifacts)
	run.recorder.RecordPublish(len(artifacts), err)
	if werr := writeMetrics(run.recorder, opts.MetricsTextfile); werr != nil {
		run.observer.Printf("Warning: %v", werr)
	}
	if err != nil {
		return fmt.Errorf("failed to publish artifacts: %w", err)
	}

	fmt.Fprint(stdout, renderSynthSummary(run.result, uris, isInteractiveTTY()))
	return nil
}

func artifactsOf(result *orchestration.Result) []s3.Artifact {
	contentType := s3.ContentTypeYAML
	if result.Format == cfn.FormatJSON {
		contentType = s3.ContentTypeJSON
	}
	return []s3.Artifact{
		{Name: result.TemplateFile(), Data: result.TemplateBody, ContentType: contentType},
		{Name: orchestration.BuildSpecFile, Data: result.BuildSpec, ContentType: s3.ContentTypeYAML},
	}
}

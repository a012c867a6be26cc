package s3

import (
	"context"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/imamik/repokit/internal/util/retry"
)

// DefaultConcurrency is the number of parallel uploads.
const DefaultConcurrency = 4

// Content types of published artifacts.
const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

// ObjectPutter uploads objects.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, key string, data []byte, contentType string) error
}

// Artifact is a file to publish.
type Artifact struct {
	Name        string
	Data        []byte
	ContentType string
}

// Publisher uploads artifacts below a bucket prefix.
type Publisher struct {
	client      ObjectPutter
	bucket      string
	prefix      string
	concurrency int
	retryOpts   []retry.Option
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithConcurrency sets the number of parallel uploads.
func WithConcurrency(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithRetryOptions sets the retry behavior of a single upload.
func WithRetryOptions(opts ...retry.Option) PublisherOption {
	return func(p *Publisher) {
		p.retryOpts = append(p.retryOpts, opts...)
	}
}

// NewPublisher creates a publisher for bucket and prefix.
func NewPublisher(client ObjectPutter, bucket, prefix string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client:      client,
		bucket:      bucket,
		prefix:      prefix,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ObjectKey joins prefix and name into an object key.
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Publish uploads all artifacts and returns their s3:// URIs in input order.
// The first failed upload cancels the remaining ones.
func (p *Publisher) Publish(ctx context.Context, artifacts []Artifact) ([]string, error) {
	if p.bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	uris := make([]string, len(artifacts))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.concurrency)

	retryOpts := append([]retry.Option{
		retry.WithRetryable(func(err error) bool { return !isPermanentError(err) }),
	}, p.retryOpts...)

	for i, a := range artifacts {
		key := ObjectKey(p.prefix, a.Name)
		eg.Go(func() error {
			err := retry.WithExponentialBackoff(ctx, func() error {
				return p.client.PutObject(ctx, p.bucket, key, a.Data, a.ContentType)
			}, retryOpts...)
			if err != nil {
				return fmt.Errorf("failed to publish %s: %w", a.Name, err)
			}

			uris[i] = fmt.Sprintf("s3://%s/%s", p.bucket, key)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return uris, nil
}

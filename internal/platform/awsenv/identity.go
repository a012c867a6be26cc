package awsenv

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/util/retry"
)

// STSAPI is the subset of the STS client used here.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Identity is the resolved caller identity.
type Identity struct {
	Account string
	ARN     string
	UserID  string
	Region  string
}

// Options configures a Resolver.
type Options struct {
	Region  string
	Profile string

	// RetryOptions tune the GetCallerIdentity retry.
	RetryOptions []retry.Option
}

// Resolver looks up the caller identity.
type Resolver struct {
	client    STSAPI
	region    string
	retryOpts []retry.Option
}

// NewResolver creates a resolver from the default AWS configuration chain.
func NewResolver(ctx context.Context, opts Options) (*Resolver, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewResolverWithClient(sts.NewFromConfig(cfg), cfg.Region, opts.RetryOptions...), nil
}

// NewResolverWithClient creates a resolver around an existing client.
func NewResolverWithClient(client STSAPI, region string, opts ...retry.Option) *Resolver {
	return &Resolver{client: client, region: region, retryOpts: opts}
}

// Identity calls GetCallerIdentity. Throttling and transport errors are
// retried; credential errors are not.
func (r *Resolver) Identity(ctx context.Context) (*Identity, error) {
	opts := append([]retry.Option{
		retry.WithRetryable(func(err error) bool { return !isCredentialError(err) }),
	}, r.retryOpts...)

	var out *sts.GetCallerIdentityOutput
	err := retry.WithExponentialBackoff(ctx, func() error {
		var err error
		out, err = r.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		return err
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
		Region:  r.region,
	}, nil
}

// Apply fills an empty stack account and region from the caller identity.
// Configured values are never overwritten. It returns the identity used.
func (r *Resolver) Apply(ctx context.Context, cfg *config.Config) (*Identity, error) {
	id, err := r.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Stack.Account == "" {
		cfg.Stack.Account = id.Account
	}
	if cfg.Stack.Region == "" {
		cfg.Stack.Region = id.Region
	}
	if cfg.Artifacts != nil && cfg.Artifacts.Region == "" {
		cfg.Artifacts.Region = cfg.Stack.Region
	}
	return id, nil
}

func isCredentialError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ExpiredToken", "ExpiredTokenException", "InvalidClientTokenId", "AccessDenied", "SignatureDoesNotMatch":
		return true
	}
	return false
}

package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Options configures a Client. Zero values fall back to the default AWS
// credential chain and endpoint.
type Options struct {
	Region string

	// Profile selects a shared config profile.
	Profile string

	// Endpoint overrides the S3 endpoint, e.g. for LocalStack. Path-style
	// addressing is used when set.
	Endpoint string

	// AccessKey and SecretKey set static credentials.
	AccessKey string
	SecretKey string
}

// Client wraps the S3 client for the artifacts bucket.
type Client struct {
	s3     *s3.Client
	region string
}

// NewClient creates a new S3 client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{s3: client, region: cfg.Region}, nil
}

// Region returns the region the client talks to.
func (c *Client) Region() string {
	return c.region
}

// BucketExists checks if a bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	return true, nil
}

// PutObject uploads an object to a bucket.
func (c *Client) PutObject(ctx context.Context, bucketName, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, bucketName, err)
	}
	return nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}

	return false
}

// isPermanentError reports errors that retrying cannot fix.
func isPermanentError(err error) bool {
	if isNotFoundError(err) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "InvalidBucketName", "ExpiredToken":
			return true
		}
		return apiErr.ErrorFault() == smithy.FaultClient && apiErr.ErrorCode() != "SlowDown" && apiErr.ErrorCode() != "RequestTimeout"
	}
	return false
}

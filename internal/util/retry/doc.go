// Package retry provides exponential backoff retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, maximum delay and an optional error classifier.
// It is used for the AWS calls made when publishing templates and
// resolving the caller identity. Template synthesis itself never retries.
package retry

// Package awsenv resolves the AWS account and region a stack is synthesized for.
//
// The account comes from STS GetCallerIdentity; the region from the loaded
// AWS configuration. Both are only consulted when the repokit configuration
// leaves them empty.
package awsenv

package config

import (
	"os"

	"github.com/imamik/repokit/internal/util/naming"
)

const (
	// DefaultBranch is the pipeline source branch when none is configured.
	DefaultBranch = "main"

	// DefaultBuildImage is the CodeBuild image for pull-request checks.
	DefaultBuildImage = "aws/codebuild/standard:7.0"
)

// Environment variables consulted when the stack identity is not configured.
const (
	EnvCDKDefaultAccount = "CDK_DEFAULT_ACCOUNT"
	EnvCDKDefaultRegion  = "CDK_DEFAULT_REGION"
	EnvAWSRegion         = "AWS_REGION"
)

// ApplyDefaults fills unset fields with defaults. Explicit values are never
// overwritten.
func (c *Config) ApplyDefaults() {
	if c.Repository.Branch == "" {
		c.Repository.Branch = DefaultBranch
	}
	if c.Repository.CodeBuild.BuildImage == "" {
		c.Repository.CodeBuild.BuildImage = DefaultBuildImage
	}
	if c.Stack.Name == "" && c.Application.Name != "" {
		c.Stack.Name = naming.StackName(c.Application.Name)
	}
	if c.Stack.Account == "" {
		c.Stack.Account = os.Getenv(EnvCDKDefaultAccount)
	}
	if c.Stack.Region == "" {
		c.Stack.Region = firstNonEmpty(os.Getenv(EnvCDKDefaultRegion), os.Getenv(EnvAWSRegion))
	}
	if c.Artifacts != nil && c.Artifacts.Region == "" {
		c.Artifacts.Region = c.Stack.Region
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

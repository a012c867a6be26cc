package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

var (
	// repositoryNameRegex matches CodeCommit repository names.
	repositoryNameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,100}$`)

	// applicationNameRegex keeps application names usable in resource names.
	applicationNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,62}$`)

	// qualifierRegex matches CDK bootstrap qualifiers.
	qualifierRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,10}$`)

	accountRegex = regexp.MustCompile(`^[0-9]{12}$`)
	regionRegex  = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]?)?-[a-z]+-[0-9]$`)
)

// Validate validates the configuration and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	// Application
	if c.Application.Name == "" {
		errs = append(errs, errors.New("application.name is required"))
	} else if !applicationNameRegex.MatchString(c.Application.Name) {
		errs = append(errs, errors.New("application.name must start with a letter and contain only letters, digits and hyphens"))
	}
	if c.Application.Qualifier == "" {
		errs = append(errs, errors.New("application.qualifier is required"))
	} else if !qualifierRegex.MatchString(c.Application.Qualifier) {
		errs = append(errs, errors.New("application.qualifier must be 1-10 characters of letters, digits, '_' or '-'"))
	}

	// Stack
	if c.Stack.Name == "" {
		errs = append(errs, errors.New("stack.name is required"))
	} else if strings.Contains(c.Stack.Name, "/") {
		errs = append(errs, errors.New("stack.name must not contain '/'"))
	}
	if c.Stack.Account != "" && !accountRegex.MatchString(c.Stack.Account) {
		errs = append(errs, fmt.Errorf("stack.account %q must be a 12-digit AWS account id", c.Stack.Account))
	}
	if c.Stack.Region != "" && !regionRegex.MatchString(c.Stack.Region) {
		errs = append(errs, fmt.Errorf("stack.region %q is not a valid AWS region", c.Stack.Region))
	}

	// Repository
	errs = append(errs, c.Repository.validate()...)

	// VPC
	if c.VPC != nil {
		errs = append(errs, c.VPC.validate()...)
	}

	// Artifacts
	if c.Artifacts != nil && c.Artifacts.Bucket == "" {
		errs = append(errs, errors.New("artifacts.bucket is required when artifacts is set"))
	}

	return errors.Join(errs...)
}

func (r *Repository) validate() []error {
	var errs []error

	if r.Name == "" {
		errs = append(errs, errors.New("repository.name is required"))
	} else if !repositoryNameRegex.MatchString(r.Name) || strings.HasSuffix(r.Name, ".git") {
		errs = append(errs, fmt.Errorf("repository.name %q must be 1-100 characters of letters, digits, '.', '_' or '-' and must not end in .git", r.Name))
	}
	if len(r.Description) > 1000 {
		errs = append(errs, errors.New("repository.description must be 1000 characters or less"))
	}
	if r.Branch == "" {
		errs = append(errs, errors.New("repository.branch is required"))
	}
	if r.CodeBuild.BuildImage == "" {
		errs = append(errs, errors.New("repository.codeBuild.buildImage is required"))
	}

	return errs
}

func (v *VPCProps) validate() []error {
	var errs []error

	if v.VPCID == "" && (len(v.SubnetIDs) > 0 || len(v.SecurityGroupIDs) > 0) {
		errs = append(errs, errors.New("vpc.vpcId is required when subnets or security groups are set"))
	}
	if v.Proxy != nil && v.Proxy.ProxySecretArn != "" {
		parsed, err := arn.Parse(v.Proxy.ProxySecretArn)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("vpc.proxy.proxySecretArn: %w", err))
		case parsed.Service != "secretsmanager":
			errs = append(errs, fmt.Errorf("vpc.proxy.proxySecretArn must be a secretsmanager ARN, got service %q", parsed.Service))
		}
	}

	return errs
}

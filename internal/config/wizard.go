package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	ApplicationName  string
	Qualifier        string
	RepositoryName   string
	Description      string
	Branch           string
	CodeGuruReviewer bool
	Privileged       bool
	BuildImage       string
	ProxySecretArn   string
}

// RunWizard asks for the handful of values needed to describe a repository.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Branch:     DefaultBranch,
		BuildImage: DefaultBuildImage,
		Privileged: true,
	}

	form := huh.NewForm(
		// Application identity
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Description("Used in resource names, e.g. the approval rule template").
				Placeholder("my-app").
				Value(&result.ApplicationName).
				Validate(validateApplicationName),
			huh.NewInput().
				Title("CDK qualifier").
				Description("Bootstrap qualifier exported as CDK_QUALIFIER (max 10 chars)").
				Placeholder("myapp").
				Value(&result.Qualifier).
				Validate(validateQualifier),
		),

		// Repository
		huh.NewGroup(
			huh.NewInput().
				Title("Repository name").
				Placeholder("my-app").
				Value(&result.RepositoryName).
				Validate(validateRepositoryName),
			huh.NewInput().
				Title("Description (optional)").
				Value(&result.Description),
			huh.NewInput().
				Title("Pipeline branch").
				Value(&result.Branch).
				Validate(requireNonEmpty("branch")),
		),

		// Pull-request checks
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable CodeGuru Reviewer?").
				Description("Registers an automated code-quality reviewer on the repository").
				Value(&result.CodeGuruReviewer),
			huh.NewConfirm().
				Title("Run PR builds in privileged mode?").
				Description("Required to build Lambda functions written in JS/TS with Docker").
				Value(&result.Privileged),
			huh.NewInput().
				Title("Build image").
				Value(&result.BuildImage).
				Validate(requireNonEmpty("build image")),
		),

		// Optional proxy
		huh.NewGroup(
			huh.NewInput().
				Title("Proxy secret ARN (optional)").
				Description("Secrets Manager ARN with proxy credentials. Leave empty to skip.").
				Value(&result.ProxySecretArn),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config with defaults applied.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Application: Application{
			Name:      r.ApplicationName,
			Qualifier: r.Qualifier,
		},
		Repository: Repository{
			Name:             r.RepositoryName,
			Description:      r.Description,
			Branch:           r.Branch,
			CodeGuruReviewer: r.CodeGuruReviewer,
			CodeBuild: CodeBuild{
				IsPrivileged: r.Privileged,
				BuildImage:   r.BuildImage,
			},
		},
	}
	if r.ProxySecretArn != "" {
		cfg.VPC = &VPCProps{
			Proxy: &Proxy{ProxySecretArn: r.ProxySecretArn},
		}
	}
	cfg.ApplyDefaults()
	return cfg
}

func validateApplicationName(s string) error {
	if !applicationNameRegex.MatchString(s) {
		return errors.New("must start with a letter and contain only letters, digits and hyphens")
	}
	return nil
}

func validateQualifier(s string) error {
	if !qualifierRegex.MatchString(s) {
		return errors.New("must be 1-10 characters of letters, digits, '_' or '-'")
	}
	return nil
}

func validateRepositoryName(s string) error {
	if !repositoryNameRegex.MatchString(s) || strings.HasSuffix(s, ".git") {
		return errors.New("must be 1-100 characters of letters, digits, '.', '_' or '-'")
	}
	return nil
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

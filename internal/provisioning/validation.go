package provisioning

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase implements the Phase interface for pre-flight validation.
// It runs before any resource is declared so that a bad configuration never
// produces a partial template.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	ctx.Observer.Printf("[Validation] Running pre-flight validation...")

	if ctx.Config == nil {
		return fmt.Errorf("configuration is required")
	}
	if err := ctx.Config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	var errs []ValidationError
	for _, ve := range preflight(ctx) {
		if !ve.IsError() {
			ctx.Observer.Event(Event{
				Type:    EventValidationWarning,
				Phase:   vp.Name(),
				Message: ve.Message,
				Fields:  map[string]string{"field": ve.Field},
			})
			continue
		}
		errs = append(errs, ve)
	}

	if len(errs) > 0 {
		var errMsgs []string
		for _, e := range errs {
			errMsgs = append(errMsgs, e.Error())
		}
		return fmt.Errorf("pre-flight validation failed:\n  %s", strings.Join(errMsgs, "\n  "))
	}

	ctx.Observer.Printf("[Validation] Validation passed")
	return nil
}

// preflight runs the checks that depend on the resolved environment rather
// than on the configuration file alone.
func preflight(ctx *Context) []ValidationError {
	var errs []ValidationError
	cfg := ctx.Config

	// --- Environment ---

	if cfg.Stack.Account == "" {
		errs = append(errs, ValidationError{
			Field:    "stack.account",
			Message:  "account is not set; grants use ${AWS::AccountId} (set it in the config, export CDK_DEFAULT_ACCOUNT or use --resolve-account)",
			Severity: "warning",
		})
	}

	if cfg.Stack.Region == "" {
		errs = append(errs, ValidationError{
			Field:    "stack.region",
			Message:  "region is not set; grants use ${AWS::Region} (set it in the config or export CDK_DEFAULT_REGION)",
			Severity: "warning",
		})
	}

	// --- Collaborators ---

	if ctx.Engine == nil {
		errs = append(errs, ValidationError{
			Field:    "engine",
			Message:  "no provisioning engine configured",
			Severity: "error",
		})
	}

	if ctx.BuildSpecs == nil {
		errs = append(errs, ValidationError{
			Field:    "buildSpecs",
			Message:  "no build spec source configured",
			Severity: "error",
		})
	}

	// --- Recommendations ---

	if cfg.Repository.CodeBuild.IsPrivileged {
		errs = append(errs, ValidationError{
			Field:    "repository.codeBuild.isPrivileged",
			Message:  "pull-request check runs in privileged mode",
			Severity: "warning",
		})
	}

	if cfg.ProxySecretArn() != "" && cfg.VPC.Proxy.ProxyTestURL == "" {
		errs = append(errs, ValidationError{
			Field:    "vpc.proxy.proxyTestUrl",
			Message:  "proxy is configured without a test URL; connectivity will not be probed during install",
			Severity: "warning",
		})
	}

	return errs
}

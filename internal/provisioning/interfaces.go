package provisioning

import (
	"github.com/imamik/repokit/internal/buildspec"
	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/iam"
	"github.com/imamik/repokit/internal/nag"
)

// RepositoryKindCodeCommit is the repository kind reported to CodeGuru Reviewer.
const RepositoryKindCodeCommit = "CodeCommit"

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// RepositoryHandle identifies a provisioned repository.
type RepositoryHandle struct {
	Name        string
	Description string

	// Path is the construct path of the repository resource.
	Path string
}

// PipelineSourceHandle is the repository and branch a downstream pipeline
// consumes. It is only ever produced by a PipelineSourceFactory.
type PipelineSourceHandle struct {
	Repository RepositoryHandle
	Branch     string
}

// CheckOpts holds the parameters of a pull-request validation job.
type CheckOpts struct {
	Repository *RepositoryHandle
	BuildSpec  *buildspec.Spec
	VPC        *config.VPCProps // nil when the build runs outside a VPC
	Privileged bool
	BuildImage string
}

// ValidationJob is a pull-request check. It owns the permission set of its
// execution role.
type ValidationJob interface {
	// Name returns the name of the build project.
	Name() string

	// AddToRolePolicy grants an additional statement to the execution role.
	AddToRolePolicy(stmt iam.Statement) error
}

// RepositoryService creates managed repositories.
type RepositoryService interface {
	CreateRepository(name, description string) (*RepositoryHandle, error)
}

// PipelineSourceFactory derives pipeline inputs from repositories.
type PipelineSourceFactory interface {
	FromRepository(repo *RepositoryHandle, branch string) (*PipelineSourceHandle, error)
}

// ReviewerService registers automated code-quality reviewers.
type ReviewerService interface {
	AssociateReviewer(repositoryName, repositoryKind string) error
}

// ApprovalRuleService manages approval rule templates.
type ApprovalRuleService interface {
	// CreateApprovalRuleTemplate returns the template name to associate.
	CreateApprovalRuleTemplate(name string, approvalsNeeded int) (string, error)
	AssociateApprovalRuleTemplate(templateName string, repo *RepositoryHandle) error
}

// PullRequestCheckService creates validation jobs.
type PullRequestCheckService interface {
	CreatePullRequestCheck(opts CheckOpts) (ValidationJob, error)
}

// SuppressionRegistry records security-scanner suppressions.
type SuppressionRegistry interface {
	// AddResourceSuppressions suppresses rules on a construct scope.
	AddResourceSuppressions(scope string, rules []nag.Rule, recursive bool) error

	// AddResourceSuppressionsByPath suppresses rules on an explicit resource path.
	AddResourceSuppressionsByPath(path string, rules []nag.Rule, recursive bool) error
}

// Engine is the full set of collaborators a provisioning backend provides.
type Engine interface {
	RepositoryService
	PipelineSourceFactory
	ReviewerService
	ApprovalRuleService
	PullRequestCheckService
	SuppressionRegistry
}

// BuildSpecSource supplies the network-dependent base build spec and the
// canonical pipeline commands.
type BuildSpecSource interface {
	PartialBuildSpec(vpc *config.VPCProps) *buildspec.Spec
	PipelineCommands() []string
}

// DefaultBuildSpecSource serves the build spec helpers of package buildspec.
type DefaultBuildSpecSource struct{}

// PartialBuildSpec implements BuildSpecSource.
func (DefaultBuildSpecSource) PartialBuildSpec(vpc *config.VPCProps) *buildspec.Spec {
	return buildspec.Partial(vpc)
}

// PipelineCommands implements BuildSpecSource.
func (DefaultBuildSpecSource) PipelineCommands() []string {
	return buildspec.PipelineCommands()
}

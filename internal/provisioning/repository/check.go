package repository

import (
	"fmt"

	"github.com/imamik/repokit/internal/buildspec"
	"github.com/imamik/repokit/internal/iam"
	"github.com/imamik/repokit/internal/provisioning"
)

// QualifierCommand exports the bootstrap qualifier for the cdk CLI.
func QualifierCommand(qualifier string) string {
	return fmt.Sprintf("export CDK_QUALIFIER=%s", qualifier)
}

// BuildSpec merges the network-dependent base spec with the qualifier export
// and the pipeline commands.
func BuildSpec(ctx *provisioning.Context) *buildspec.Spec {
	base := ctx.BuildSpecs.PartialBuildSpec(ctx.Config.VPC)
	overlay := buildspec.New().
		WithCommands(buildspec.PhaseInstall, QualifierCommand(ctx.Config.Application.Qualifier)).
		WithCommands(buildspec.PhaseBuild, ctx.BuildSpecs.PipelineCommands()...)
	return buildspec.Merge(base, overlay)
}

// Grants returns the statements the pull-request check needs, in order.
// The secret grant is only present when a proxy secret is configured.
func Grants(ctx *provisioning.Context) []iam.Statement {
	cfg := ctx.Config
	grants := []iam.Statement{
		iam.AssumeLookupRoleStatement(),
		iam.GetParameterReadStatement(cfg.Stack.Account, cfg.Stack.Region, cfg.Application.Qualifier),
	}
	if arn := cfg.ProxySecretArn(); arn != "" {
		grants = append(grants, iam.GetSecretValueStatement(arn))
	}
	return grants
}

// ProvisionPullRequestCheck creates the validation build and grants its role
// the lookup, parameter and proxy secret permissions.
func (p *Provisioner) ProvisionPullRequestCheck(ctx *provisioning.Context) error {
	repo, err := requireRepository(ctx)
	if err != nil {
		return err
	}
	cfg := ctx.Config

	spec := BuildSpec(ctx)
	ctx.State.BuildSpec = spec

	provisioning.LogResourceCreating(ctx.Observer, PhasePullRequestCheck, "pull-request check", repo.Name)
	job, err := ctx.Engine.CreatePullRequestCheck(provisioning.CheckOpts{
		Repository: repo,
		BuildSpec:  spec,
		VPC:        cfg.VPC,
		Privileged: cfg.Repository.CodeBuild.IsPrivileged,
		BuildImage: cfg.Repository.CodeBuild.BuildImage,
	})
	if err != nil {
		return fmt.Errorf("failed to create pull-request check for %s: %w", repo.Name, err)
	}
	ctx.State.ValidationJob = job
	provisioning.LogResourceCreated(ctx.Observer, PhasePullRequestCheck, "pull-request check", job.Name())

	for _, stmt := range Grants(ctx) {
		if err := job.AddToRolePolicy(stmt); err != nil {
			return fmt.Errorf("failed to grant %v to %s: %w", stmt.Actions, job.Name(), err)
		}
		ctx.State.Grants = append(ctx.State.Grants, stmt)
		provisioning.LogPermissionGranted(ctx.Observer, PhasePullRequestCheck, job.Name(), stmt.Actions)
	}
	return nil
}

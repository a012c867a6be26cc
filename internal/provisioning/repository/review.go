package repository

import (
	"fmt"

	"github.com/imamik/repokit/internal/provisioning"
	"github.com/imamik/repokit/internal/util/naming"
)

// RequiredApprovals is the number of approvals every pull request needs.
const RequiredApprovals = 1

// ProvisionReviewer associates CodeGuru Reviewer with the repository when enabled.
func (p *Provisioner) ProvisionReviewer(ctx *provisioning.Context) error {
	if !ctx.Config.Repository.CodeGuruReviewer {
		provisioning.LogResourceSkipped(ctx.Observer, PhaseReviewer, "reviewer", "codeGuruReviewer is disabled")
		return nil
	}

	repo, err := requireRepository(ctx)
	if err != nil {
		return err
	}

	provisioning.LogResourceCreating(ctx.Observer, PhaseReviewer, "reviewer", repo.Name)
	if err := ctx.Engine.AssociateReviewer(repo.Name, provisioning.RepositoryKindCodeCommit); err != nil {
		return fmt.Errorf("failed to associate reviewer with %s: %w", repo.Name, err)
	}
	ctx.State.ReviewerAssociated = true
	provisioning.LogResourceCreated(ctx.Observer, PhaseReviewer, "reviewer", repo.Name)
	return nil
}

// ProvisionApprovalRule creates the approval rule template and associates it
// with the repository. It always runs.
func (p *Provisioner) ProvisionApprovalRule(ctx *provisioning.Context) error {
	repo, err := requireRepository(ctx)
	if err != nil {
		return err
	}

	name := naming.ApprovalRuleTemplate(ctx.Config.Application.Name)
	provisioning.LogResourceCreating(ctx.Observer, PhaseApproval, "approval rule template", name)

	tmpl, err := ctx.Engine.CreateApprovalRuleTemplate(name, RequiredApprovals)
	if err != nil {
		return fmt.Errorf("failed to create approval rule template %s: %w", name, err)
	}
	if err := ctx.Engine.AssociateApprovalRuleTemplate(tmpl, repo); err != nil {
		return fmt.Errorf("failed to associate approval rule template %s with %s: %w", tmpl, repo.Name, err)
	}
	ctx.State.ApprovalTemplateName = tmpl

	provisioning.LogResourceCreated(ctx.Observer, PhaseApproval, "approval rule template", tmpl)
	return nil
}

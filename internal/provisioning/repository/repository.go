package repository

import (
	"fmt"

	"github.com/imamik/repokit/internal/provisioning"
)

// ProvisionRepository creates the repository and derives the pipeline source
// for the configured branch.
func (p *Provisioner) ProvisionRepository(ctx *provisioning.Context) error {
	cfg := ctx.Config.Repository
	provisioning.LogResourceCreating(ctx.Observer, PhaseRepository, "repository", cfg.Name)

	repo, err := ctx.Engine.CreateRepository(cfg.Name, cfg.Description)
	if err != nil {
		return fmt.Errorf("failed to create repository %s: %w", cfg.Name, err)
	}
	ctx.State.Repository = repo

	src, err := ctx.Engine.FromRepository(repo, cfg.Branch)
	if err != nil {
		return fmt.Errorf("failed to derive pipeline source for %s@%s: %w", cfg.Name, cfg.Branch, err)
	}
	ctx.State.PipelineSource = src

	provisioning.LogResourceCreated(ctx.Observer, PhaseRepository, "repository", repo.Name)
	ctx.Observer.Printf("[%s] Pipeline source: %s@%s", PhaseRepository, src.Repository.Name, src.Branch)
	return nil
}

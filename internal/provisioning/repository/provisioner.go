package repository

import (
	"fmt"

	"github.com/imamik/repokit/internal/provisioning"
)

// Phase names.
const (
	PhaseRepository       = "repository"
	PhaseReviewer         = "reviewer"
	PhaseApproval         = "approval"
	PhasePullRequestCheck = "pull-request-check"
	PhaseSuppressions     = "suppressions"
)

// Provisioner handles provisioning of the repository and everything attached to it.
type Provisioner struct{}

// NewProvisioner creates a new repository provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Phases returns the pre-flight validation followed by one phase per step,
// for use with provisioning.RunPhases.
func (p *Provisioner) Phases() []provisioning.Phase {
	phases := []provisioning.Phase{provisioning.NewValidationPhase()}
	for _, s := range p.steps() {
		phases = append(phases, s)
	}
	return phases
}

func (p *Provisioner) steps() []step {
	return []step{
		{PhaseRepository, p.ProvisionRepository},
		{PhaseReviewer, p.ProvisionReviewer},
		{PhaseApproval, p.ProvisionApprovalRule},
		{PhasePullRequestCheck, p.ProvisionPullRequestCheck},
		{PhaseSuppressions, p.ProvisionSuppressions},
	}
}

// step adapts a provisioner method to provisioning.Phase.
type step struct {
	name string
	fn   func(*provisioning.Context) error
}

func (s step) Name() string                              { return s.name }
func (s step) Provision(ctx *provisioning.Context) error { return s.fn(ctx) }

// Provision validates the configuration, runs all phases against ctx.Engine
// and returns the pipeline source of the new repository.
func Provision(ctx *provisioning.Context) (*provisioning.PipelineSourceHandle, error) {
	if err := provisioning.RunPhases(ctx, NewProvisioner().Phases()); err != nil {
		return nil, err
	}
	if ctx.State.PipelineSource == nil {
		return nil, fmt.Errorf("provisioning finished without a pipeline source")
	}
	return ctx.State.PipelineSource, nil
}

func requireRepository(ctx *provisioning.Context) (*provisioning.RepositoryHandle, error) {
	if ctx.State.Repository == nil {
		return nil, fmt.Errorf("repository has not been provisioned")
	}
	return ctx.State.Repository, nil
}

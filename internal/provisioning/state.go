package provisioning

import (
	"github.com/imamik/repokit/internal/buildspec"
	"github.com/imamik/repokit/internal/iam"
	"github.com/imamik/repokit/internal/nag"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Repository results
	Repository     *RepositoryHandle
	PipelineSource *PipelineSourceHandle

	// Review results
	ReviewerAssociated   bool
	ApprovalTemplateName string

	// Pull-request check results
	BuildSpec     *buildspec.Spec
	ValidationJob ValidationJob
	Grants        []iam.Statement // statements granted to the check, in order

	// Suppressions registered with the security scanner
	Suppressions []nag.Suppression
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

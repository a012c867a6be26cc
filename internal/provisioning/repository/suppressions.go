package repository

import (
	"fmt"

	"github.com/imamik/repokit/internal/nag"
	"github.com/imamik/repokit/internal/provisioning"
	"github.com/imamik/repokit/internal/util/naming"
)

// ProvisionSuppressions registers the scanner suppressions: the construct
// rules on the whole repository component and the IAM wildcard rule on the
// pull-request check.
func (p *Provisioner) ProvisionSuppressions(ctx *provisioning.Context) error {
	stack := ctx.Config.Stack.Name

	scope := naming.ConstructPath(stack)
	rules := nag.ConstructRules()
	if err := ctx.Engine.AddResourceSuppressions(scope, rules, true); err != nil {
		return fmt.Errorf("failed to suppress rules on %s: %w", scope, err)
	}
	p.record(ctx, nag.Suppression{Rules: rules, Recursive: true, Path: scope})

	path := naming.PullRequestCheckPath(stack)
	rules = nag.PullRequestCheckRules()
	if err := ctx.Engine.AddResourceSuppressionsByPath(path, rules, true); err != nil {
		return fmt.Errorf("failed to suppress rules on %s: %w", path, err)
	}
	p.record(ctx, nag.Suppression{Rules: rules, Recursive: true, Path: path})

	return nil
}

func (p *Provisioner) record(ctx *provisioning.Context, s nag.Suppression) {
	ctx.State.Suppressions = append(ctx.State.Suppressions, s)
	provisioning.LogSuppressionAdded(ctx.Observer, PhaseSuppressions, s.Path, s.RuleIDs())
}

// Package nag holds the documented cdk-nag suppressions applied to the
// repository resources.
//
// Suppressions are static policy: the tables below are the single place to
// audit which AwsSolutions findings are accepted and why.
package nag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MinReasonLength is the minimum justification length cdk-nag accepts.
const MinReasonLength = 10

// Rule is one suppressed finding with its justification.
type Rule struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Validate checks the rule id and the justification length.
func (r Rule) Validate() error {
	var errs []error
	if !strings.Contains(r.ID, "-") {
		errs = append(errs, fmt.Errorf("rule id %q must be of the form Pack-Rule", r.ID))
	}
	if len(r.Reason) < MinReasonLength {
		errs = append(errs, fmt.Errorf("rule %s: reason must be at least %d characters", r.ID, MinReasonLength))
	}
	return errors.Join(errs...)
}

// Suppression is a set of rules applied to the construct at Path and, when
// Recursive, to everything below it.
type Suppression struct {
	Rules     []Rule
	Recursive bool
	Path      string
}

// RuleIDs returns the ids of the suppressed rules.
func (s Suppression) RuleIDs() []string {
	ids := make([]string, len(s.Rules))
	for i, r := range s.Rules {
		ids[i] = r.ID
	}
	return ids
}

var constructRules = []Rule{
	{
		ID:     "AwsSolutions-L1",
		Reason: "Suppress AwsSolutions-L1 - Outdated Lambda for PullRequestChecker",
	},
	{
		ID:     "AwsSolutions-CB4",
		Reason: "Encryption not needed for CodeBuild pull request verification",
	},
	{
		ID:     "AwsSolutions-CB3",
		Reason: "Suppress AwsSolutions-CB3 - Privileged mode is required to build Lambda functions written in JS/TS",
	},
}

var pullRequestCheckRules = []Rule{
	{
		ID:     "AwsSolutions-IAM5",
		Reason: "Suppress AwsSolutions-IAM5 on the PR check lambda function Resource.",
	},
}

// ConstructRules returns the rules suppressed on the whole repository
// construct.
func ConstructRules() []Rule {
	return slices.Clone(constructRules)
}

// PullRequestCheckRules returns the rules suppressed on the pull-request
// check sub-tree.
func PullRequestCheckRules() []Rule {
	return slices.Clone(pullRequestCheckRules)
}

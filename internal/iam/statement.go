// Package iam models IAM policy statements and the append-only permission
// sets attached to build execution roles.
package iam

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

// PolicyVersion is the IAM policy language version.
const PolicyVersion = "2012-10-17"

// Effect is the effect of a policy statement.
type Effect string

const (
	// EffectAllow grants the listed actions.
	EffectAllow Effect = "Allow"
	// EffectDeny denies the listed actions.
	EffectDeny Effect = "Deny"
)

// Statement is a single IAM policy statement.
type Statement struct {
	Sid       string   `json:"Sid,omitempty"`
	Effect    Effect   `json:"Effect"`
	Actions   []string `json:"Action"`
	Resources []string `json:"Resource"`
}

// NewAllow returns an Allow statement.
func NewAllow(actions []string, resources []string) Statement {
	return Statement{
		Effect:    EffectAllow,
		Actions:   slices.Clone(actions),
		Resources: slices.Clone(resources),
	}
}

// Clone returns a deep copy of the statement.
func (s Statement) Clone() Statement {
	s.Actions = slices.Clone(s.Actions)
	s.Resources = slices.Clone(s.Resources)
	return s
}

// pseudoParameters substitutes sample values so that ARNs with
// pseudo-parameter references can be checked for shape.
var pseudoParameters = strings.NewReplacer(PseudoRegion, "us-east-1", PseudoAccountID, "000000000000")

// Validate checks the effect, the action format and that every resource is
// either "*" or a well-formed ARN.
func (s Statement) Validate() error {
	var errs []error

	if s.Effect != EffectAllow && s.Effect != EffectDeny {
		errs = append(errs, fmt.Errorf("invalid effect %q", s.Effect))
	}
	if len(s.Actions) == 0 {
		errs = append(errs, errors.New("at least one action is required"))
	}
	for _, action := range s.Actions {
		if action != "*" && !strings.Contains(action, ":") {
			errs = append(errs, fmt.Errorf("action %q must be of the form service:Action", action))
		}
	}
	if len(s.Resources) == 0 {
		errs = append(errs, errors.New("at least one resource is required"))
	}
	for _, resource := range s.Resources {
		if resource == "*" {
			continue
		}
		if _, err := arn.Parse(pseudoParameters.Replace(resource)); err != nil {
			errs = append(errs, fmt.Errorf("resource %q: %w", resource, err))
		}
	}

	return errors.Join(errs...)
}

// Allows returns true if the statement allows the action on the resource.
// Matching is exact; wildcards are compared literally.
func (s Statement) Allows(action, resource string) bool {
	return s.Effect == EffectAllow &&
		slices.Contains(s.Actions, action) &&
		slices.Contains(s.Resources, resource)
}

package iam

import (
	"fmt"
	"slices"
)

// PermissionSet accumulates statements for an execution role. Statements can
// only be added, never removed.
type PermissionSet struct {
	statements []Statement
}

// NewPermissionSet returns an empty permission set.
func NewPermissionSet() *PermissionSet {
	return &PermissionSet{}
}

// Add validates and appends a statement.
func (p *PermissionSet) Add(stmt Statement) error {
	if err := stmt.Validate(); err != nil {
		return fmt.Errorf("invalid policy statement: %w", err)
	}
	p.statements = append(p.statements, stmt.Clone())
	return nil
}

// Len returns the number of statements.
func (p *PermissionSet) Len() int {
	return len(p.statements)
}

// Statements returns a copy of the statements in insertion order.
func (p *PermissionSet) Statements() []Statement {
	out := make([]Statement, len(p.statements))
	for i, s := range p.statements {
		out[i] = s.Clone()
	}
	return out
}

// Allows returns true if any statement allows the action on the resource.
func (p *PermissionSet) Allows(action, resource string) bool {
	return slices.ContainsFunc(p.statements, func(s Statement) bool {
		return s.Allows(action, resource)
	})
}

// PolicyDocument is the JSON shape of an IAM policy.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Document returns the permission set as a policy document.
func (p *PermissionSet) Document() PolicyDocument {
	return PolicyDocument{
		Version:   PolicyVersion,
		Statement: p.Statements(),
	}
}

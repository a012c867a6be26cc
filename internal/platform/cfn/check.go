package cfn

import (
	"github.com/imamik/repokit/internal/iam"
)

// PullRequestCheck is a declared validation build. Statements added through
// AddToRolePolicy end up in the execution role's default policy.
type PullRequestCheck struct {
	name        string
	path        string
	permissions *iam.PermissionSet
}

// Name returns the build project name.
func (c *PullRequestCheck) Name() string {
	return c.name
}

// Path returns the construct path of the check.
func (c *PullRequestCheck) Path() string {
	return c.path
}

// AddToRolePolicy grants an additional statement to the execution role.
func (c *PullRequestCheck) AddToRolePolicy(stmt iam.Statement) error {
	return c.permissions.Add(stmt)
}

// Permissions returns the statements granted through AddToRolePolicy.
func (c *PullRequestCheck) Permissions() []iam.Statement {
	return c.permissions.Statements()
}

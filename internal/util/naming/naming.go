package naming

import (
	"fmt"
	"strings"
)

// Construct IDs of the repository component and its children.
const (
	ConstructID        = "CodeCommit"
	RepositoryID       = "Repository"
	ReviewerID         = "RepositoryAssociation"
	ApprovalRuleID     = "ApprovalRuleTemplate"
	ApprovalRuleLinkID = "ApprovalRuleTemplateAssociation"
	PullRequestCheckID = "PullRequestCheck"
	CheckProjectID     = "Project"
	CheckRoleID        = "Role"
	CheckPolicyID      = "DefaultPolicy"
	CheckTriggerID     = "OnPullRequest"
)

// PathSeparator separates construct IDs in a path.
const PathSeparator = "/"

// Path joins construct IDs into a construct path.
func Path(ids ...string) string {
	return strings.Join(ids, PathSeparator)
}

// ConstructPath is the path of the repository component in a stack.
func ConstructPath(stack string) string {
	return Path(stack, ConstructID)
}

// PullRequestCheckPath is the path of the pull-request validation job.
func PullRequestCheckPath(stack string) string {
	return Path(stack, ConstructID, PullRequestCheckID)
}

// StackName is the default stack name for an application.
func StackName(application string) string {
	return fmt.Sprintf("%s-core", application)
}

// ApprovalRuleTemplate is the approval rule template every repository gets.
func ApprovalRuleTemplate(application string) string {
	return fmt.Sprintf("%s-Require-1-Approver", application)
}

// PullRequestCheckProject is the build project name of the validation job.
func PullRequestCheckProject(application, repository string) string {
	return fmt.Sprintf("%s-%s-pull-request", application, repository)
}

// TemplateFile is the file name of a synthesized stack template.
func TemplateFile(stack, format string) string {
	return fmt.Sprintf("%s.template.%s", stack, format)
}

package cfn

import (
	"github.com/imamik/repokit/internal/iam"
	"github.com/imamik/repokit/internal/nag"
	"github.com/imamik/repokit/internal/provisioning"
)

// MockEngine is a mock implementation of provisioning.Engine that records
// every call in order.
type MockEngine struct {
	CreateRepositoryFunc              func(name, description string) (*provisioning.RepositoryHandle, error)
	FromRepositoryFunc                func(repo *provisioning.RepositoryHandle, branch string) (*provisioning.PipelineSourceHandle, error)
	AssociateReviewerFunc             func(repositoryName, repositoryKind string) error
	CreateApprovalRuleTemplateFunc    func(name string, approvalsNeeded int) (string, error)
	AssociateApprovalRuleTemplateFunc func(templateName string, repo *provisioning.RepositoryHandle) error
	CreatePullRequestCheckFunc        func(opts provisioning.CheckOpts) (provisioning.ValidationJob, error)
	AddResourceSuppressionsFunc       func(scope string, rules []nag.Rule, recursive bool) error
	AddSuppressionsByPathFunc         func(path string, rules []nag.Rule, recursive bool) error

	// Calls lists the invoked method names in order.
	Calls []string

	// Job is the validation job returned by the default CreatePullRequestCheck.
	Job *MockValidationJob

	// Recorded arguments.
	ReviewerCalls     [][2]string
	ApprovalTemplates []MockApprovalTemplate
	CheckOpts         []provisioning.CheckOpts
	Suppressions      []nag.Suppression
}

// MockApprovalTemplate records a CreateApprovalRuleTemplate call.
type MockApprovalTemplate struct {
	Name            string
	ApprovalsNeeded int
}

// Ensure interface compliance
var _ provisioning.Engine = (*MockEngine)(nil)

// CreateRepository mocks repository creation.
func (m *MockEngine) CreateRepository(name, description string) (*provisioning.RepositoryHandle, error) {
	m.Calls = append(m.Calls, "CreateRepository")
	if m.CreateRepositoryFunc != nil {
		return m.CreateRepositoryFunc(name, description)
	}
	return &provisioning.RepositoryHandle{Name: name, Description: description, Path: "mock/" + name}, nil
}

// FromRepository mocks pipeline source derivation.
func (m *MockEngine) FromRepository(repo *provisioning.RepositoryHandle, branch string) (*provisioning.PipelineSourceHandle, error) {
	m.Calls = append(m.Calls, "FromRepository")
	if m.FromRepositoryFunc != nil {
		return m.FromRepositoryFunc(repo, branch)
	}
	return &provisioning.PipelineSourceHandle{Repository: *repo, Branch: branch}, nil
}

// AssociateReviewer mocks reviewer association.
func (m *MockEngine) AssociateReviewer(repositoryName, repositoryKind string) error {
	m.Calls = append(m.Calls, "AssociateReviewer")
	m.ReviewerCalls = append(m.ReviewerCalls, [2]string{repositoryName, repositoryKind})
	if m.AssociateReviewerFunc != nil {
		return m.AssociateReviewerFunc(repositoryName, repositoryKind)
	}
	return nil
}

// CreateApprovalRuleTemplate mocks template creation.
func (m *MockEngine) CreateApprovalRuleTemplate(name string, approvalsNeeded int) (string, error) {
	m.Calls = append(m.Calls, "CreateApprovalRuleTemplate")
	m.ApprovalTemplates = append(m.ApprovalTemplates, MockApprovalTemplate{Name: name, ApprovalsNeeded: approvalsNeeded})
	if m.CreateApprovalRuleTemplateFunc != nil {
		return m.CreateApprovalRuleTemplateFunc(name, approvalsNeeded)
	}
	return name, nil
}

// AssociateApprovalRuleTemplate mocks template association.
func (m *MockEngine) AssociateApprovalRuleTemplate(templateName string, repo *provisioning.RepositoryHandle) error {
	m.Calls = append(m.Calls, "AssociateApprovalRuleTemplate")
	if m.AssociateApprovalRuleTemplateFunc != nil {
		return m.AssociateApprovalRuleTemplateFunc(templateName, repo)
	}
	return nil
}

// CreatePullRequestCheck mocks validation job creation.
func (m *MockEngine) CreatePullRequestCheck(opts provisioning.CheckOpts) (provisioning.ValidationJob, error) {
	m.Calls = append(m.Calls, "CreatePullRequestCheck")
	m.CheckOpts = append(m.CheckOpts, opts)
	if m.CreatePullRequestCheckFunc != nil {
		return m.CreatePullRequestCheckFunc(opts)
	}
	if m.Job == nil {
		m.Job = &MockValidationJob{JobName: "mock-check"}
	}
	return m.Job, nil
}

// AddResourceSuppressions mocks scope suppressions.
func (m *MockEngine) AddResourceSuppressions(scope string, rules []nag.Rule, recursive bool) error {
	m.Calls = append(m.Calls, "AddResourceSuppressions")
	m.Suppressions = append(m.Suppressions, nag.Suppression{Rules: rules, Recursive: recursive, Path: scope})
	if m.AddResourceSuppressionsFunc != nil {
		return m.AddResourceSuppressionsFunc(scope, rules, recursive)
	}
	return nil
}

// AddResourceSuppressionsByPath mocks path suppressions.
func (m *MockEngine) AddResourceSuppressionsByPath(path string, rules []nag.Rule, recursive bool) error {
	m.Calls = append(m.Calls, "AddResourceSuppressionsByPath")
	m.Suppressions = append(m.Suppressions, nag.Suppression{Rules: rules, Recursive: recursive, Path: path})
	if m.AddSuppressionsByPathFunc != nil {
		return m.AddSuppressionsByPathFunc(path, rules, recursive)
	}
	return nil
}

// MockValidationJob is a mock provisioning.ValidationJob.
type MockValidationJob struct {
	JobName           string
	Statements        []iam.Statement
	AddToRolePolicyFn func(stmt iam.Statement) error
}

// Name returns the job name.
func (j *MockValidationJob) Name() string {
	return j.JobName
}

// AddToRolePolicy records the statement.
func (j *MockValidationJob) AddToRolePolicy(stmt iam.Statement) error {
	if j.AddToRolePolicyFn != nil {
		if err := j.AddToRolePolicyFn(stmt); err != nil {
			return err
		}
	}
	j.Statements = append(j.Statements, stmt)
	return nil
}

package cfn

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/awslabs/goformation/v7/cloudformation"
	"github.com/awslabs/goformation/v7/cloudformation/codebuild"
	"github.com/awslabs/goformation/v7/cloudformation/codecommit"
	"github.com/awslabs/goformation/v7/cloudformation/codegurureviewer"
	"github.com/awslabs/goformation/v7/cloudformation/events"
	cfniam "github.com/awslabs/goformation/v7/cloudformation/iam"
	"github.com/awslabs/goformation/v7/cloudformation/tags"

	"github.com/imamik/repokit/internal/buildspec"
	"github.com/imamik/repokit/internal/iam"
	"github.com/imamik/repokit/internal/nag"
	"github.com/imamik/repokit/internal/provisioning"
	"github.com/imamik/repokit/internal/util/labels"
	"github.com/imamik/repokit/internal/util/naming"
)

// CloudFormation resource types declared by the engine.
const (
	TypeRepository          = "AWS::CodeCommit::Repository"
	TypeReviewerAssociation = "AWS::CodeGuruReviewer::RepositoryAssociation"
	TypeApprovalRule        = "Custom::ApprovalRuleTemplate"
	TypeApprovalRuleLink    = "Custom::ApprovalRuleTemplateRepositoryAssociation"
	TypeProject             = "AWS::CodeBuild::Project"
	TypeRole                = "AWS::IAM::Role"
	TypePolicy              = "AWS::IAM::Policy"
	TypeEventRule           = "AWS::Events::Rule"
)

// Template parameter and output names.
const (
	ParamApprovalRuleProvider = "ApprovalRuleProviderServiceToken"

	OutputRepositoryName   = "RepositoryName"
	OutputCloneURL         = "RepositoryCloneUrlHttp"
	OutputSourceBranch     = "PipelineSourceBranch"
	OutputCheckProjectName = "PullRequestCheckProjectName"
)

// Options configures an Engine.
type Options struct {
	// Application names derived resources and tags.
	Application string

	// Tags are added to every taggable resource.
	Tags map[string]string
}

// Engine implements provisioning.Engine by declaring resources in a Stack.
type Engine struct {
	stack *Stack
	opts  Options

	repositories map[string]*Resource // by repository name
	templates    map[string]*Resource // by approval rule template name
	checks       []*PullRequestCheck
}

var _ provisioning.Engine = (*Engine)(nil)

// NewEngine creates an engine declaring resources into stack.
func NewEngine(stack *Stack, opts Options) *Engine {
	return &Engine{
		stack:        stack,
		opts:         opts,
		repositories: make(map[string]*Resource),
		templates:    make(map[string]*Resource),
	}
}

// Stack returns the stack the engine declares into.
func (e *Engine) Stack() *Stack {
	return e.stack
}

// Checks returns the pull-request checks created so far.
func (e *Engine) Checks() []*PullRequestCheck {
	return append([]*PullRequestCheck(nil), e.checks...)
}

func (e *Engine) path(ids ...string) string {
	return naming.Path(append([]string{naming.ConstructPath(e.stack.Name)}, ids...)...)
}

func (e *Engine) tags(component string) []tags.Tag {
	labelTags := labels.NewLabelBuilder(e.opts.Application).
		WithStack(e.stack.Name).
		WithComponent(component).
		Merge(e.opts.Tags).
		Tags()

	out := make([]tags.Tag, 0, len(labelTags))
	for _, t := range labelTags {
		out = append(out, tags.Tag{Key: t.Key, Value: t.Value})
	}
	return out
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

// CreateRepository declares the CodeCommit repository.
func (e *Engine) CreateRepository(name, description string) (*provisioning.RepositoryHandle, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: repository name is required", ErrInvalidArgument)
	}

	repoTags := e.tags(labels.ComponentRepository)
	r, err := e.stack.AddResource(e.path(naming.RepositoryID), TypeRepository, func(a Attributes) cloudformation.Resource {
		return &codecommit.Repository{
			RepositoryName:             name,
			RepositoryDescription:      optional(description),
			Tags:                       repoTags,
			AWSCloudFormationDependsOn: a.DependsOn,
			AWSCloudFormationMetadata:  a.Metadata,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare repository %s: %w", name, err)
	}
	e.repositories[name] = r

	if err := e.stack.AddOutput(OutputRepositoryName, cloudformation.Output{
		Description: cloudformation.String("Name of the CodeCommit repository"),
		Value:       cloudformation.GetAtt(r.LogicalID, "Name"),
	}); err != nil {
		return nil, err
	}
	if err := e.stack.AddOutput(OutputCloneURL, cloudformation.Output{
		Description: cloudformation.String("HTTPS clone URL of the CodeCommit repository"),
		Value:       cloudformation.GetAtt(r.LogicalID, "CloneUrlHttp"),
	}); err != nil {
		return nil, err
	}

	return &provisioning.RepositoryHandle{
		Name:        name,
		Description: description,
		Path:        r.Path,
	}, nil
}

func (e *Engine) repository(repo *provisioning.RepositoryHandle) (*Resource, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: repository handle is nil", ErrInvalidArgument)
	}
	r, ok := e.repositories[repo.Name]
	if !ok || r.Path != repo.Path {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRepository, repo.Name)
	}
	return r, nil
}

// FromRepository derives the pipeline source for a repository branch.
func (e *Engine) FromRepository(repo *provisioning.RepositoryHandle, branch string) (*provisioning.PipelineSourceHandle, error) {
	if _, err := e.repository(repo); err != nil {
		return nil, err
	}
	if branch == "" {
		return nil, fmt.Errorf("%w: branch is required", ErrInvalidArgument)
	}

	if err := e.stack.AddOutput(OutputSourceBranch, cloudformation.Output{
		Description: cloudformation.String("Branch consumed by the deployment pipeline"),
		Value:       branch,
	}); err != nil {
		return nil, err
	}

	return &provisioning.PipelineSourceHandle{
		Repository: *repo,
		Branch:     branch,
	}, nil
}

// AssociateReviewer declares the CodeGuru Reviewer association.
func (e *Engine) AssociateReviewer(repositoryName, repositoryKind string) error {
	if repositoryKind != provisioning.RepositoryKindCodeCommit {
		return fmt.Errorf("%w: unsupported repository kind %q", ErrInvalidArgument, repositoryKind)
	}
	repo, ok := e.repositories[repositoryName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRepository, repositoryName)
	}

	reviewerTags := e.tags(labels.ComponentReviewer)
	r, err := e.stack.AddResource(e.path(naming.ReviewerID), TypeReviewerAssociation, func(a Attributes) cloudformation.Resource {
		return &codegurureviewer.RepositoryAssociation{
			Name:                       cloudformation.GetAtt(repo.LogicalID, "Name"),
			Type:                       repositoryKind,
			Tags:                       reviewerTags,
			AWSCloudFormationDependsOn: a.DependsOn,
			AWSCloudFormationMetadata:  a.Metadata,
		}
	})
	if err != nil {
		return fmt.Errorf("failed to declare reviewer association: %w", err)
	}
	r.DependsOn = []string{repo.LogicalID}
	return nil
}

func (e *Engine) approvalRuleProvider() (string, error) {
	err := e.stack.AddParameter(ParamApprovalRuleProvider, cloudformation.Parameter{
		Type:        "String",
		Description: cloudformation.String("Service token of the approval rule template custom resource provider"),
	})
	if err != nil {
		return "", err
	}
	return cloudformation.Ref(ParamApprovalRuleProvider), nil
}

// customResource renders a provider-backed resource.
func customResource(resourceType string, props map[string]any) Builder {
	return func(a Attributes) cloudformation.Resource {
		return &cloudformation.CustomResource{
			Type:                       resourceType,
			Properties:                 props,
			AWSCloudFormationDependsOn: a.DependsOn,
			AWSCloudFormationMetadata:  a.Metadata,
		}
	}
}

// CreateApprovalRuleTemplate declares an approval rule template and returns its name.
func (e *Engine) CreateApprovalRuleTemplate(name string, approvalsNeeded int) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: approval rule template name is required", ErrInvalidArgument)
	}
	if approvalsNeeded < 1 {
		return "", fmt.Errorf("%w: approvals needed must be at least 1, got %d", ErrInvalidArgument, approvalsNeeded)
	}

	token, err := e.approvalRuleProvider()
	if err != nil {
		return "", err
	}

	r, err := e.stack.AddResource(e.path(naming.ApprovalRuleID), TypeApprovalRule, customResource(TypeApprovalRule, map[string]any{
		"ServiceToken":             token,
		"ApprovalRuleTemplateName": name,
		"Template": map[string]any{
			"Approvers": map[string]any{
				"NumberOfApprovalsNeeded": approvalsNeeded,
			},
		},
	}))
	if err != nil {
		return "", fmt.Errorf("failed to declare approval rule template %s: %w", name, err)
	}
	e.templates[name] = r
	return name, nil
}

// AssociateApprovalRuleTemplate links an approval rule template to a repository.
func (e *Engine) AssociateApprovalRuleTemplate(templateName string, repo *provisioning.RepositoryHandle) error {
	tmpl, ok := e.templates[templateName]
	if !ok {
		return fmt.Errorf("%w: unknown approval rule template %q", ErrInvalidArgument, templateName)
	}
	repoRes, err := e.repository(repo)
	if err != nil {
		return err
	}

	token, err := e.approvalRuleProvider()
	if err != nil {
		return err
	}

	r, err := e.stack.AddResource(e.path(naming.ApprovalRuleLinkID), TypeApprovalRuleLink, customResource(TypeApprovalRuleLink, map[string]any{
		"ServiceToken":             token,
		"ApprovalRuleTemplateName": templateName,
		"RepositoryName":           cloudformation.GetAtt(repoRes.LogicalID, "Name"),
	}))
	if err != nil {
		return fmt.Errorf("failed to declare approval rule association: %w", err)
	}
	r.DependsOn = []string{tmpl.LogicalID, repoRes.LogicalID}
	return nil
}

// CreatePullRequestCheck declares the validation build, its execution role
// and the rule that starts it on pull-request changes.
func (e *Engine) CreatePullRequestCheck(opts provisioning.CheckOpts) (provisioning.ValidationJob, error) {
	repo, err := e.repository(opts.Repository)
	if err != nil {
		return nil, err
	}
	if opts.BuildImage == "" {
		return nil, fmt.Errorf("%w: build image is required", ErrInvalidArgument)
	}
	if opts.BuildSpec == nil {
		return nil, fmt.Errorf("%w: build spec is required", ErrInvalidArgument)
	}
	spec, err := buildspec.Render(opts.BuildSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to render build spec: %w", err)
	}

	check := &PullRequestCheck{
		name:        naming.PullRequestCheckProject(e.opts.Application, opts.Repository.Name),
		path:        e.path(naming.PullRequestCheckID),
		permissions: iam.NewPermissionSet(),
	}
	checkTags := e.tags(labels.ComponentPullRequestCheck)

	role, err := e.stack.AddResource(naming.Path(check.path, naming.CheckRoleID), TypeRole, func(a Attributes) cloudformation.Resource {
		return &cfniam.Role{
			AssumeRolePolicyDocument: map[string]any{
				"Version": iam.PolicyVersion,
				"Statement": []any{
					map[string]any{
						"Effect": string(iam.EffectAllow),
						"Principal": map[string]any{
							"Service": []string{"codebuild.amazonaws.com", "events.amazonaws.com"},
						},
						"Action": "sts:AssumeRole",
					},
				},
			},
			Tags:                       checkTags,
			AWSCloudFormationDependsOn: a.DependsOn,
			AWSCloudFormationMetadata:  a.Metadata,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare pull-request check role: %w", err)
	}

	projectPath := naming.Path(check.path, naming.CheckProjectID)
	projectID := LogicalID(projectPath)
	policyPath := naming.Path(check.path, naming.CheckRoleID, naming.CheckPolicyID)
	vpc := opts.VPC != nil && opts.VPC.VPCID != ""

	policy, err := e.stack.AddResource(policyPath, TypePolicy, func(a Attributes) cloudformation.Resource {
		doc := check.permissions.Document()
		for _, stmt := range doc.Statement {
			for i, resource := range stmt.Resources {
				if iam.UsesPseudoParameters(resource) {
					stmt.Resources[i] = cloudformation.Sub(resource)
				}
			}
		}
		doc.Statement = append(baseStatements(repo.LogicalID, projectID, vpc), doc.Statement...)
		return &cfniam.Policy{
			PolicyName:                 LogicalID(policyPath),
			PolicyDocument:             doc,
			Roles:                      []string{cloudformation.Ref(role.LogicalID)},
			AWSCloudFormationDependsOn: a.DependsOn,
			AWSCloudFormationMetadata:  a.Metadata,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare pull-request check policy: %w", err)
	}

	var vpcConfig *codebuild.Project_VpcConfig
	if vpc {
		vpcConfig = &codebuild.Project_VpcConfig{
			VpcId:            aws.String(opts.VPC.VPCID),
			Subnets:          opts.VPC.SubnetIDs,
			SecurityGroupIds: opts.VPC.SecurityGroupIDs,
		}
	}
	buildSpec := string(spec)
	description := fmt.Sprintf("Pull request validation for %s", opts.Repository.Name)

	project, err := e.stack.AddResource(projectPath, TypeProject, func(a Attributes) cloudformation.Resource {
		return &codebuild.Project{
			Name:        aws.String(check.name),
			Description: aws.String(description),
			Source: &codebuild.Project_Source{
				Type:      "CODECOMMIT",
				Location:  aws.String(cloudformation.GetAtt(repo.LogicalID, "CloneUrlHttp")),
				BuildSpec: aws.String(buildSpec),
			},
			Artifacts: &codebuild.Project_Artifacts{Type: "NO_ARTIFACTS"},
			Environment: &codebuild.Project_Environment{
				Type:           "LINUX_CONTAINER",
				ComputeType:    "BUILD_GENERAL1_SMALL",
				Image:          opts.BuildImage,
				PrivilegedMode: aws.Bool(opts.Privileged),
			},
			ServiceRole:                cloudformation.GetAtt(role.LogicalID, "Arn"),
			VpcConfig:                  vpcConfig,
			Tags:                       checkTags,
			AWSCloudFormationDependsOn: a.DependsOn,
			AWSCloudFormationMetadata:  a.Metadata,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare pull-request check project: %w", err)
	}
	project.DependsOn = []string{policy.LogicalID, role.LogicalID}

	triggerDescription := fmt.Sprintf("Start %s on pull request changes", check.name)
	if _, err := e.stack.AddResource(naming.Path(check.path, naming.CheckTriggerID), TypeEventRule, func(a Attributes) cloudformation.Resource {
		return &events.Rule{
			Description: aws.String(triggerDescription),
			State:       aws.String("ENABLED"),
			EventPattern: map[string]any{
				"source":      []string{"aws.codecommit"},
				"resources":   []string{cloudformation.GetAtt(repo.LogicalID, "Arn")},
				"detail-type": []string{"CodeCommit Pull Request State Change"},
				"detail": map[string]any{
					"event": []string{"pullRequestCreated", "pullRequestSourceBranchUpdated"},
				},
			},
			Targets: []events.Rule_Target{
				{
					Id:      "Target0",
					Arn:     cloudformation.GetAtt(project.LogicalID, "Arn"),
					RoleArn: aws.String(cloudformation.GetAtt(role.LogicalID, "Arn")),
					InputTransformer: &events.Rule_InputTransformer{
						InputPathsMap: map[string]string{"sourceCommit": "$.detail.sourceCommit"},
						InputTemplate: `{"sourceVersion": <sourceCommit>}`,
					},
				},
			},
			AWSCloudFormationDependsOn: a.DependsOn,
			AWSCloudFormationMetadata:  a.Metadata,
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to declare pull-request trigger: %w", err)
	}

	if err := e.stack.AddOutput(OutputCheckProjectName, cloudformation.Output{
		Description: cloudformation.String("Name of the pull-request validation project"),
		Value:       cloudformation.Ref(project.LogicalID),
	}); err != nil {
		return nil, err
	}

	e.checks = append(e.checks, check)
	return check, nil
}

// baseStatements are the permissions every validation build needs to run.
func baseStatements(repoID, projectID string, vpc bool) []iam.Statement {
	logGroup := fmt.Sprintf("arn:${AWS::Partition}:logs:${AWS::Region}:${AWS::AccountId}:log-group:/aws/codebuild/${%s}", projectID)
	statements := []iam.Statement{
		iam.NewAllow(
			[]string{"logs:CreateLogGroup", "logs:CreateLogStream", "logs:PutLogEvents"},
			[]string{cloudformation.Sub(logGroup), cloudformation.Sub(logGroup + ":*")},
		),
		iam.NewAllow([]string{"codecommit:GitPull"}, []string{cloudformation.GetAtt(repoID, "Arn")}),
		iam.NewAllow([]string{"codebuild:StartBuild"}, []string{cloudformation.GetAtt(projectID, "Arn")}),
	}
	if vpc {
		statements = append(statements, iam.NewAllow([]string{
			"ec2:CreateNetworkInterface",
			"ec2:CreateNetworkInterfacePermission",
			"ec2:DeleteNetworkInterface",
			"ec2:DescribeDhcpOptions",
			"ec2:DescribeNetworkInterfaces",
			"ec2:DescribeSecurityGroups",
			"ec2:DescribeSubnets",
			"ec2:DescribeVpcs",
		}, []string{"*"}))
	}
	return statements
}

// AddResourceSuppressions suppresses rules on a construct scope.
func (e *Engine) AddResourceSuppressions(scope string, rules []nag.Rule, recursive bool) error {
	if err := e.stack.AddSuppression(scope, rules, recursive); err != nil {
		return fmt.Errorf("failed to suppress rules on %s: %w", scope, err)
	}
	return nil
}

// AddResourceSuppressionsByPath suppresses rules on a stack-qualified path.
func (e *Engine) AddResourceSuppressionsByPath(path string, rules []nag.Rule, recursive bool) error {
	if !strings.HasPrefix(path, e.stack.Name+naming.PathSeparator) {
		return fmt.Errorf("%w: %s is not in stack %s", ErrUnmatchedPath, path, e.stack.Name)
	}
	if err := e.stack.AddSuppression(path, rules, recursive); err != nil {
		return fmt.Errorf("failed to suppress rules on %s: %w", path, err)
	}
	return nil
}

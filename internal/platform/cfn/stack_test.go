package cfn

import (
	"testing"

	"github.com/awslabs/goformation/v7/cloudformation"
	"github.com/awslabs/goformation/v7/cloudformation/codecommit"
	cfniam "github.com/awslabs/goformation/v7/cloudformation/iam"

	"github.com/imamik/repokit/internal/nag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack(t *testing.T) *Stack {
	t.Helper()
	s, err := NewStack("app-core", "123456789012", "eu-central-1")
	require.NoError(t, err)
	return s
}

var testRule = nag.Rule{ID: "AwsSolutions-IAM5", Reason: "wildcards are required here"}

func roleBuilder(a Attributes) cloudformation.Resource {
	return &cfniam.Role{
		AssumeRolePolicyDocument:   map[string]any{},
		AWSCloudFormationDependsOn: a.DependsOn,
		AWSCloudFormationMetadata:  a.Metadata,
	}
}

func TestNewStack_InvalidName(t *testing.T) {
	t.Parallel()
	_, err := NewStack("", "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewStack("a/b", "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStack_AddResource(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)

	r, err := s.AddResource("app-core/CodeCommit/Repository", TypeRepository, func(a Attributes) cloudformation.Resource {
		return &codecommit.Repository{RepositoryName: "repo", AWSCloudFormationMetadata: a.Metadata}
	})
	require.NoError(t, err)
	assert.Equal(t, LogicalID("app-core/CodeCommit/Repository"), r.LogicalID)

	got, ok := s.Resource("app-core/CodeCommit/Repository")
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Len(t, s.Resources(), 1)
}

func TestStack_AddResource_DuplicatePath(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)

	_, err := s.AddResource("app-core/A", TypeRole, roleBuilder)
	require.NoError(t, err)

	_, err = s.AddResource("app-core/A", TypeRole, roleBuilder)
	assert.ErrorIs(t, err, ErrDuplicatePath)
}

func TestStack_AddResource_NoBuilder(t *testing.T) {
	t.Parallel()
	_, err := newTestStack(t).AddResource("app-core/A", TypeRole, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStack_AddResource_OutsideStack(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)

	_, err := s.AddResource("other/A", TypeRole, roleBuilder)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStack_ResourcesUnder(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)
	for _, p := range []string{"app-core/C/A", "app-core/C/B/Role", "app-core/CX/A"} {
		_, err := s.AddResource(p, TypeRole, roleBuilder)
		require.NoError(t, err)
	}

	under := s.ResourcesUnder("app-core/C")
	require.Len(t, under, 2)
	assert.Equal(t, "app-core/C/A", under[0].Path)
	assert.Equal(t, "app-core/C/B/Role", under[1].Path)
}

func TestStack_AddSuppression(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)
	_, err := s.AddResource("app-core/C/Check/Role", TypeRole, roleBuilder)
	require.NoError(t, err)

	t.Run("recursive match", func(t *testing.T) {
		require.NoError(t, s.AddSuppression("app-core/C", []nag.Rule{testRule}, true))
	})

	t.Run("non-recursive requires exact path", func(t *testing.T) {
		err := s.AddSuppression("app-core/C", []nag.Rule{testRule}, false)
		assert.ErrorIs(t, err, ErrUnmatchedPath)
	})

	t.Run("unmatched path", func(t *testing.T) {
		err := s.AddSuppression("app-core/Missing", []nag.Rule{testRule}, true)
		assert.ErrorIs(t, err, ErrUnmatchedPath)
	})

	t.Run("invalid rule", func(t *testing.T) {
		err := s.AddSuppression("app-core/C", []nag.Rule{{ID: "AwsSolutions-L1", Reason: "short"}}, true)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("no rules", func(t *testing.T) {
		err := s.AddSuppression("app-core/C", nil, true)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	assert.Len(t, s.Suppressions(), 1)
}

func TestStack_SuppressedRulesDeduplicated(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)
	r, err := s.AddResource("app-core/C/Check/Role", TypeRole, roleBuilder)
	require.NoError(t, err)

	other := nag.Rule{ID: "AwsSolutions-L1", Reason: "outdated runtime in provider"}
	require.NoError(t, s.AddSuppression("app-core/C", []nag.Rule{testRule, other}, true))
	require.NoError(t, s.AddSuppression("app-core/C/Check", []nag.Rule{{ID: testRule.ID, Reason: "second registration"}}, true))

	rules := s.suppressedRules(r)
	require.Len(t, rules, 2)
	assert.Equal(t, testRule, rules[0])
	assert.Equal(t, other, rules[1])
}

func TestStack_ParametersAndOutputs(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)

	p := cloudformation.Parameter{Type: "String", Description: cloudformation.String("token")}
	require.NoError(t, s.AddParameter("Token", p))
	require.NoError(t, s.AddParameter("Token", p))
	assert.ErrorIs(t, s.AddParameter("Token", cloudformation.Parameter{Type: "Number"}), ErrInvalidArgument)

	require.NoError(t, s.AddOutput("Name", cloudformation.Output{Value: "x"}))
	assert.ErrorIs(t, s.AddOutput("Name", cloudformation.Output{Value: "y"}), ErrInvalidArgument)

	tmpl, err := s.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, "String", tmpl.Parameters["Token"].Type)
	assert.Equal(t, "x", tmpl.Outputs["Name"].Value)
}

func TestStack_Synthesize_Attributes(t *testing.T) {
	t.Parallel()
	s := newTestStack(t)
	a, err := s.AddResource("app-core/C/A", TypeRole, roleBuilder)
	require.NoError(t, err)
	b, err := s.AddResource("app-core/C/B", TypeRole, roleBuilder)
	require.NoError(t, err)
	b.DependsOn = []string{a.LogicalID}
	require.NoError(t, s.AddSuppression("app-core/C/B", []nag.Rule{testRule}, false))

	tmpl, err := s.Synthesize()
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, tmpl.AWSTemplateFormatVersion)

	roleA := tmpl.Resources[a.LogicalID].(*cfniam.Role)
	assert.Empty(t, roleA.AWSCloudFormationDependsOn)
	assert.Equal(t, map[string]any{MetadataPath: "app-core/C/A"}, roleA.AWSCloudFormationMetadata)

	roleB := tmpl.Resources[b.LogicalID].(*cfniam.Role)
	assert.Equal(t, []string{a.LogicalID}, roleB.AWSCloudFormationDependsOn)
	assert.Equal(t, map[string]any{"rules_to_suppress": []nag.Rule{testRule}}, roleB.AWSCloudFormationMetadata[MetadataNag])
	assert.Equal(t, map[string]int{TypeRole: 2}, tmpl.ResourceCounts())
}

func TestStack_Synthesize_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown dependency", func(t *testing.T) {
		s := newTestStack(t)
		r, err := s.AddResource("app-core/A", TypeRole, roleBuilder)
		require.NoError(t, err)
		r.DependsOn = []string{"Missing"}

		_, err = s.Synthesize()
		assert.ErrorContains(t, err, "depends on unknown resource Missing")
	})

	t.Run("type mismatch", func(t *testing.T) {
		s := newTestStack(t)
		_, err := s.AddResource("app-core/A", TypePolicy, roleBuilder)
		require.NoError(t, err)

		_, err = s.Synthesize()
		assert.ErrorContains(t, err, "declared as AWS::IAM::Policy, built as AWS::IAM::Role")
	})
}

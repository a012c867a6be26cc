package iam

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionSet_AddIsAppendOnly(t *testing.T) {
	t.Parallel()
	ps := NewPermissionSet()

	require.NoError(t, ps.Add(AssumeLookupRoleStatement()))
	require.NoError(t, ps.Add(GetParameterReadStatement("111111111111", "eu-west-1", "q1")))

	assert.Equal(t, 2, ps.Len())
	stmts := ps.Statements()
	assert.Equal(t, []string{"sts:AssumeRole"}, stmts[0].Actions)
	assert.Contains(t, stmts[1].Actions, "ssm:GetParameter")
}

func TestPermissionSet_StatementsReturnsCopy(t *testing.T) {
	t.Parallel()
	ps := NewPermissionSet()
	require.NoError(t, ps.Add(AssumeLookupRoleStatement()))

	stmts := ps.Statements()
	stmts[0].Actions[0] = "iam:*"

	assert.Equal(t, []string{"sts:AssumeRole"}, ps.Statements()[0].Actions)
}

func TestPermissionSet_AddCopiesInput(t *testing.T) {
	t.Parallel()
	ps := NewPermissionSet()
	stmt := GetSecretValueStatement("arn:aws:secretsmanager:eu-west-1:111111111111:secret:s")
	require.NoError(t, ps.Add(stmt))

	stmt.Resources[0] = "*"

	assert.True(t, ps.Allows("secretsmanager:GetSecretValue", "arn:aws:secretsmanager:eu-west-1:111111111111:secret:s"))
	assert.False(t, ps.Allows("secretsmanager:GetSecretValue", "*"))
}

func TestPermissionSet_RejectsInvalid(t *testing.T) {
	t.Parallel()
	ps := NewPermissionSet()

	err := ps.Add(NewAllow([]string{"secretsmanager:GetSecretValue"}, []string{"not-an-arn"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid policy statement")
	assert.Equal(t, 0, ps.Len())
}

func TestPermissionSet_Document(t *testing.T) {
	t.Parallel()
	ps := NewPermissionSet()
	require.NoError(t, ps.Add(AssumeLookupRoleStatement()))

	data, err := json.Marshal(ps.Document())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Action": ["sts:AssumeRole"],
			"Resource": ["arn:aws:iam::*:role/cdk-*-lookup-role-*"]
		}]
	}`, string(data))
}

func TestPermissionSet_EmptyDocument(t *testing.T) {
	t.Parallel()
	doc := NewPermissionSet().Document()
	assert.Equal(t, PolicyVersion, doc.Version)
	assert.Empty(t, doc.Statement)
}

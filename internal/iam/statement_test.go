package iam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssumeLookupRoleStatement(t *testing.T) {
	t.Parallel()
	stmt := AssumeLookupRoleStatement()

	require.NoError(t, stmt.Validate())
	assert.Equal(t, EffectAllow, stmt.Effect)
	assert.True(t, stmt.Allows("sts:AssumeRole", "arn:aws:iam::*:role/cdk-*-lookup-role-*"))
}

func TestGetParameterReadStatement(t *testing.T) {
	t.Parallel()
	stmt := GetParameterReadStatement("111111111111", "eu-west-1", "q1")

	require.NoError(t, stmt.Validate())
	assert.Equal(t, []string{"arn:aws:ssm:eu-west-1:111111111111:parameter/q1/*"}, stmt.Resources)
	assert.Equal(t, []string{"ssm:GetParameter", "ssm:GetParameters", "ssm:GetParametersByPath"}, stmt.Actions)
}

func TestGetParameterReadStatement_PseudoParameters(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name            string
		account, region string
		want            string
	}{
		{"no account", "", "eu-west-1", "arn:aws:ssm:eu-west-1:${AWS::AccountId}:parameter/q1/*"},
		{"no region", "111111111111", "", "arn:aws:ssm:${AWS::Region}:111111111111:parameter/q1/*"},
		{"neither", "", "", "arn:aws:ssm:${AWS::Region}:${AWS::AccountId}:parameter/q1/*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stmt := GetParameterReadStatement(tt.account, tt.region, "q1")
			require.NoError(t, stmt.Validate())
			assert.Equal(t, []string{tt.want}, stmt.Resources)
			assert.True(t, UsesPseudoParameters(stmt.Resources[0]))
		})
	}
	assert.False(t, UsesPseudoParameters(GetParameterReadStatement("111111111111", "eu-west-1", "q1").Resources[0]))
}

func TestGetSecretValueStatement(t *testing.T) {
	t.Parallel()
	secret := "arn:aws:secretsmanager:eu-west-1:111111111111:secret:s"
	stmt := GetSecretValueStatement(secret)

	require.NoError(t, stmt.Validate())
	assert.Equal(t, []string{secret}, stmt.Resources)
	assert.Equal(t, []string{"secretsmanager:GetSecretValue"}, stmt.Actions)
}

func TestStatement_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		stmt    Statement
		wantErr string
	}{
		{"valid wildcard resource", NewAllow([]string{"s3:GetObject"}, []string{"*"}), ""},
		{"bad effect", Statement{Effect: "Maybe", Actions: []string{"s3:GetObject"}, Resources: []string{"*"}}, "invalid effect"},
		{"no actions", NewAllow(nil, []string{"*"}), "at least one action"},
		{"malformed action", NewAllow([]string{"GetObject"}, []string{"*"}), "service:Action"},
		{"no resources", NewAllow([]string{"s3:GetObject"}, nil), "at least one resource"},
		{"malformed resource", NewAllow([]string{"s3:GetObject"}, []string{"bucket"}), `resource "bucket"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.stmt.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStatement_DenyNeverAllows(t *testing.T) {
	t.Parallel()
	stmt := Statement{Effect: EffectDeny, Actions: []string{"s3:GetObject"}, Resources: []string{"*"}}
	assert.False(t, stmt.Allows("s3:GetObject", "*"))
}

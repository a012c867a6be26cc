package provisioning

import (
	"context"
	"testing"

	"github.com/imamik/repokit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	return &config.Config{
		Application: config.Application{Name: "app", Qualifier: "hnb659fds"},
		Stack:       config.Stack{Name: "app-core", Account: "123456789012", Region: "eu-central-1"},
		Repository: config.Repository{
			Name:      "my-repo",
			Branch:    "main",
			CodeBuild: config.CodeBuild{BuildImage: "aws/codebuild/standard:7.0"},
		},
	}
}

func newValidationContext(cfg *config.Config, observer *MockObserver) *Context {
	return NewContext(context.Background(), cfg, stubEngine{}).WithObserver(observer)
}

func TestValidationPhase_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "validation", NewValidationPhase().Name())
}

func TestValidationPhase_Valid(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	err := NewValidationPhase().Provision(newValidationContext(validConfig(), observer))

	require.NoError(t, err)
	assert.Empty(t, observer.eventsOfType(EventValidationWarning))
}

func TestValidationPhase_InvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Repository.Name = "bad.git"

	err := NewValidationPhase().Provision(newValidationContext(cfg, NewMockObserver()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "repository.name")
}

func TestValidationPhase_MissingEnvironment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		mutate      func(*config.Config)
		wantField   string
		wantMessage string
	}{
		{
			name:        "missing account",
			mutate:      func(c *config.Config) { c.Stack.Account = "" },
			wantField:   "stack.account",
			wantMessage: "${AWS::AccountId}",
		},
		{
			name:        "missing region",
			mutate:      func(c *config.Config) { c.Stack.Region = "" },
			wantField:   "stack.region",
			wantMessage: "${AWS::Region}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			observer := NewMockObserver()

			err := NewValidationPhase().Provision(newValidationContext(cfg, observer))

			require.NoError(t, err)
			warnings := observer.eventsOfType(EventValidationWarning)
			require.Len(t, warnings, 1)
			assert.Equal(t, tt.wantField, warnings[0].Fields["field"])
			assert.Contains(t, warnings[0].Message, tt.wantMessage)
		})
	}
}

func TestValidationPhase_NilConfig(t *testing.T) {
	t.Parallel()
	ctx := &Context{Context: context.Background(), Observer: NewMockObserver()}

	require.Error(t, NewValidationPhase().Provision(ctx))
}

func TestValidationPhase_MissingCollaborators(t *testing.T) {
	t.Parallel()
	ctx := newValidationContext(validConfig(), NewMockObserver())
	ctx.Engine = nil
	ctx.BuildSpecs = nil

	err := NewValidationPhase().Provision(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine")
	assert.Contains(t, err.Error(), "buildSpecs")
}

func TestValidationPhase_Warnings(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Repository.CodeBuild.IsPrivileged = true
	cfg.VPC = &config.VPCProps{
		Proxy: &config.Proxy{
			ProxySecretArn: "arn:aws:secretsmanager:eu-central-1:123456789012:secret:proxy-AbCdEf",
		},
	}
	observer := NewMockObserver()

	err := NewValidationPhase().Provision(newValidationContext(cfg, observer))

	require.NoError(t, err)
	warnings := observer.eventsOfType(EventValidationWarning)
	require.Len(t, warnings, 2)
	assert.Equal(t, "repository.codeBuild.isPrivileged", warnings[0].Fields["field"])
	assert.Equal(t, "vpc.proxy.proxyTestUrl", warnings[1].Fields["field"])
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	ve := ValidationError{Field: "stack.region", Message: "region is required", Severity: "error"}

	assert.True(t, ve.IsError())
	assert.Equal(t, "[error] stack.region: region is required", ve.Error())
	assert.False(t, ValidationError{Severity: "warning"}.IsError())
}

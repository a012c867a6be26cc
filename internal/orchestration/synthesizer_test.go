package orchestration

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/platform/cfn"
	"github.com/imamik/repokit/internal/provisioning"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Application: config.Application{Name: "app", Qualifier: "hnb659fds"},
		Stack:       config.Stack{Name: "app-core", Account: "123456789012", Region: "eu-central-1"},
		Repository: config.Repository{
			Name:             "my-repo",
			Branch:           "main",
			CodeGuruReviewer: true,
			CodeBuild:        config.CodeBuild{BuildImage: config.DefaultBuildImage},
		},
	}
	return cfg
}

func quiet() Option {
	return WithObserver(provisioning.NewLogrObserver(logr.Discard()))
}

func TestSynthesize_YAML(t *testing.T) {
	t.Parallel()

	result, err := NewSynthesizer(testConfig(), quiet()).Synthesize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "app-core", result.StackName)
	assert.Equal(t, "app-core.template.yaml", result.TemplateFile())
	assert.Contains(t, string(result.TemplateBody), "AWSTemplateFormatVersion")
	assert.Contains(t, string(result.BuildSpec), "CDK_QUALIFIER=hnb659fds")
	require.NotNil(t, result.PipelineSource)
	assert.Equal(t, "main", result.PipelineSource.Branch)
	assert.Len(t, result.Checks, 1)
	assert.Len(t, result.Template.ResourcesOfType(cfn.TypeReviewerAssociation), 1)
}

func TestSynthesize_JSON(t *testing.T) {
	t.Parallel()

	result, err := NewSynthesizer(testConfig(), quiet(), WithFormat(cfn.FormatJSON)).Synthesize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "app-core.template.json", result.TemplateFile())
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(result.TemplateBody, &decoded))
	assert.Equal(t, cfn.FormatVersion, decoded["AWSTemplateFormatVersion"])
}

func TestSynthesize_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		_, err := NewSynthesizer(nil, quiet()).Synthesize(context.Background())
		assert.Error(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()
		_, err := NewSynthesizer(testConfig(), quiet(), WithFormat("toml")).Synthesize(context.Background())
		assert.ErrorContains(t, err, "unsupported template format")
	})

	t.Run("invalid repository name", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Repository.Name = "bad.git"
		_, err := NewSynthesizer(cfg, quiet()).Synthesize(context.Background())
		assert.ErrorContains(t, err, "repository.name")
	})

	t.Run("missing stack name", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Stack.Name = ""
		_, err := NewSynthesizer(cfg, quiet()).Synthesize(context.Background())
		assert.ErrorContains(t, err, "failed to create stack")
	})
}

func TestSynthesize_EnvironmentAgnostic(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Stack.Account = ""
	cfg.Stack.Region = ""

	result, err := NewSynthesizer(cfg, quiet(), WithFormat("json")).Synthesize(context.Background())

	require.NoError(t, err)
	assert.Contains(t, string(result.TemplateBody), "Fn::Sub")
	assert.Contains(t, string(result.TemplateBody), "arn:aws:ssm:${AWS::Region}:${AWS::AccountId}:parameter/")
}

func TestSynthesize_Tags(t *testing.T) {
	t.Parallel()

	result, err := NewSynthesizer(testConfig(), quiet(), WithTags(map[string]string{"team": "platform"})).
		Synthesize(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(result.TemplateBody), "platform")
}

func TestResult_WriteFiles(t *testing.T) {
	t.Parallel()

	result, err := NewSynthesizer(testConfig(), quiet()).Synthesize(context.Background())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "cdk.out")
	paths, err := result.WriteFiles(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "app-core.template.yaml"), paths[0])
	assert.Equal(t, filepath.Join(dir, BuildSpecFile), paths[1])

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, result.BuildSpec, data)
}

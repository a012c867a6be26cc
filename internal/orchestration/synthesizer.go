package orchestration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/repokit/internal/buildspec"
	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/platform/cfn"
	"github.com/imamik/repokit/internal/provisioning"
	"github.com/imamik/repokit/internal/provisioning/repository"
	"github.com/imamik/repokit/internal/util/naming"
)

// BuildSpecFile is the file name of the rendered pull-request buildspec.
const BuildSpecFile = "buildspec.yml"

// Synthesizer turns a configuration into a CloudFormation template.
type Synthesizer struct {
	config     *config.Config
	observer   provisioning.Observer
	buildSpecs provisioning.BuildSpecSource
	format     string
	tags       map[string]string
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithObserver sets the observer receiving provisioning events.
func WithObserver(o provisioning.Observer) Option {
	return func(s *Synthesizer) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithBuildSpecSource replaces the build spec source.
func WithBuildSpecSource(src provisioning.BuildSpecSource) Option {
	return func(s *Synthesizer) {
		if src != nil {
			s.buildSpecs = src
		}
	}
}

// WithFormat sets the template encoding, cfn.FormatYAML or cfn.FormatJSON.
func WithFormat(format string) Option {
	return func(s *Synthesizer) {
		if format != "" {
			s.format = format
		}
	}
}

// WithTags adds tags to every taggable resource.
func WithTags(tags map[string]string) Option {
	return func(s *Synthesizer) {
		s.tags = tags
	}
}

// NewSynthesizer creates a synthesizer for cfg.
func NewSynthesizer(cfg *config.Config, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		config:     cfg,
		observer:   provisioning.NewConsoleObserver(),
		buildSpecs: provisioning.DefaultBuildSpecSource{},
		format:     cfn.FormatYAML,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result holds everything produced by one synthesis.
type Result struct {
	StackName      string
	Account        string
	Region         string
	Format         string
	Template       *cfn.Template
	TemplateBody   []byte
	BuildSpec      []byte
	PipelineSource *provisioning.PipelineSourceHandle
	State          *provisioning.State
	Checks         []*cfn.PullRequestCheck
}

// TemplateFile returns the file name of the rendered template.
func (r *Result) TemplateFile() string {
	return naming.TemplateFile(r.StackName, r.Format)
}

// Files returns the rendered artifacts keyed by file name.
func (r *Result) Files() map[string][]byte {
	return map[string][]byte{
		r.TemplateFile(): r.TemplateBody,
		BuildSpecFile:    r.BuildSpec,
	}
}

// WriteFiles writes the template and buildspec into dir, creating it if
// needed, and returns the written paths with the template first.
func (r *Result) WriteFiles(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, 2)
	for _, name := range []string{r.TemplateFile(), BuildSpecFile} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, r.Files()[name], 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Synthesize runs the repository provisioner against a fresh stack and
// renders the result.
func (s *Synthesizer) Synthesize(ctx context.Context) (*Result, error) {
	if s.config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if s.format != cfn.FormatYAML && s.format != cfn.FormatJSON {
		return nil, fmt.Errorf("unsupported template format %q", s.format)
	}

	stack, err := cfn.NewStack(s.config.Stack.Name, s.config.Stack.Account, s.config.Stack.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create stack: %w", err)
	}
	stack.Description = fmt.Sprintf("Source repository %s for %s", s.config.Repository.Name, s.config.Application.Name)

	engine := cfn.NewEngine(stack, cfn.Options{
		Application: s.config.Application.Name,
		Tags:        s.tags,
	})

	pCtx := provisioning.NewContext(ctx, s.config, engine).
		WithObserver(s.observer.WithFields(map[string]string{"stack": stack.Name})).
		WithBuildSpecSource(s.buildSpecs)

	source, err := repository.Provision(pCtx)
	if err != nil {
		return nil, err
	}

	tmpl, err := stack.Synthesize()
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize stack %s: %w", stack.Name, err)
	}
	body, err := tmpl.Render(s.format)
	if err != nil {
		return nil, err
	}

	spec, err := buildspec.Render(pCtx.State.BuildSpec)
	if err != nil {
		return nil, err
	}

	return &Result{
		StackName:      stack.Name,
		Account:        stack.Account,
		Region:         stack.Region,
		Format:         s.format,
		Template:       tmpl,
		TemplateBody:   body,
		BuildSpec:      spec,
		PipelineSource: source,
		State:          pCtx.State,
		Checks:         engine.Checks(),
	}, nil
}

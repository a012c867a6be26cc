// Package buildspec models CodeBuild build specifications.
//
// A [Spec] maps build phases to ordered shell commands plus an optional
// environment section. Specs are composed with [Merge], which concatenates
// commands phase by phase without touching its inputs, and rendered to the
// buildspec.yml format with [Render].
package buildspec

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// DefaultVersion is the buildspec schema version.
const DefaultVersion = "0.2"

// PhaseName is a CodeBuild build phase.
type PhaseName string

// Build phases in execution order.
const (
	PhaseInstall   PhaseName = "install"
	PhasePreBuild  PhaseName = "pre_build"
	PhaseBuild     PhaseName = "build"
	PhasePostBuild PhaseName = "post_build"
)

// PhaseOrder returns all phases in execution order.
func PhaseOrder() []PhaseName {
	return []PhaseName{PhaseInstall, PhasePreBuild, PhaseBuild, PhasePostBuild}
}

// IsValid returns true if the phase is a known CodeBuild phase.
func (p PhaseName) IsValid() bool {
	return slices.Contains(PhaseOrder(), p)
}

// Phase holds the ordered commands of one build phase.
type Phase struct {
	Commands []string
}

// Env is the buildspec env section.
type Env struct {
	// Variables are plain environment variables.
	Variables map[string]string

	// SecretsManager maps variable names to secret-id:json-key references.
	SecretsManager map[string]string
}

// IsEmpty returns true if the env section has nothing to render.
func (e *Env) IsEmpty() bool {
	return e == nil || (len(e.Variables) == 0 && len(e.SecretsManager) == 0)
}

// Spec is a CodeBuild build specification.
type Spec struct {
	Version string
	Env     *Env
	Phases  map[PhaseName]Phase
}

// New returns an empty spec at DefaultVersion.
func New() *Spec {
	return &Spec{
		Version: DefaultVersion,
		Phases:  make(map[PhaseName]Phase),
	}
}

// WithCommands appends commands to a phase and returns the spec for chaining.
func (s *Spec) WithCommands(phase PhaseName, commands ...string) *Spec {
	if s.Phases == nil {
		s.Phases = make(map[PhaseName]Phase)
	}
	p := s.Phases[phase]
	p.Commands = append(slices.Clone(p.Commands), commands...)
	s.Phases[phase] = p
	return s
}

// WithVariable sets a plain environment variable.
func (s *Spec) WithVariable(name, value string) *Spec {
	s.ensureEnv()
	if s.Env.Variables == nil {
		s.Env.Variables = make(map[string]string)
	}
	s.Env.Variables[name] = value
	return s
}

// WithSecret maps an environment variable to a Secrets Manager reference.
func (s *Spec) WithSecret(name, reference string) *Spec {
	s.ensureEnv()
	if s.Env.SecretsManager == nil {
		s.Env.SecretsManager = make(map[string]string)
	}
	s.Env.SecretsManager[name] = reference
	return s
}

func (s *Spec) ensureEnv() {
	if s.Env == nil {
		s.Env = &Env{}
	}
}

// Commands returns a copy of the commands of a phase.
func (s *Spec) Commands(phase PhaseName) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.Phases[phase].Commands)
}

// PhaseNames returns the phases present in the spec, in execution order.
func (s *Spec) PhaseNames() []PhaseName {
	var names []PhaseName
	for _, p := range PhaseOrder() {
		if _, ok := s.Phases[p]; ok {
			names = append(names, p)
		}
	}
	return names
}

// Clone returns a deep copy of the spec.
func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}
	out := &Spec{
		Version: s.Version,
		Phases:  make(map[PhaseName]Phase, len(s.Phases)),
	}
	for name, p := range s.Phases {
		out.Phases[name] = Phase{Commands: slices.Clone(p.Commands)}
	}
	if s.Env != nil {
		out.Env = &Env{
			Variables:      maps.Clone(s.Env.Variables),
			SecretsManager: maps.Clone(s.Env.SecretsManager),
		}
	}
	return out
}

// Validate rejects unknown phases and blank commands.
func (s *Spec) Validate() error {
	var errs []error
	for name, p := range s.Phases {
		if !name.IsValid() {
			errs = append(errs, fmt.Errorf("unknown build phase %q", name))
			continue
		}
		for i, cmd := range p.Commands {
			if cmd == "" {
				errs = append(errs, fmt.Errorf("phase %s: command %d is empty", name, i))
			}
		}
	}
	return errors.Join(errs...)
}

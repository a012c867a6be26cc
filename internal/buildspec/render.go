package buildspec

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Render encodes the spec as buildspec.yml with phases in execution order.
func Render(s *Spec) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid build spec: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.node()); err != nil {
		return nil, fmt.Errorf("failed to encode build spec: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode build spec: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler so that embedding a Spec keeps the
// phase order.
func (s *Spec) MarshalYAML() (any, error) {
	return s.node(), nil
}

func (s *Spec) node() *yaml.Node {
	version := s.Version
	if version == "" {
		version = DefaultVersion
	}

	root := mapping()
	appendScalar(root, "version", version)

	if !s.Env.IsEmpty() {
		env := mapping()
		if len(s.Env.Variables) > 0 {
			appendPair(env, "variables", stringMap(s.Env.Variables))
		}
		if len(s.Env.SecretsManager) > 0 {
			appendPair(env, "secrets-manager", stringMap(s.Env.SecretsManager))
		}
		appendPair(root, "env", env)
	}

	if names := s.PhaseNames(); len(names) > 0 {
		phases := mapping()
		for _, name := range names {
			commands := &yaml.Node{Kind: yaml.SequenceNode}
			for _, cmd := range s.Phases[name].Commands {
				commands.Content = append(commands.Content, scalar(cmd))
			}
			phase := mapping()
			appendPair(phase, "commands", commands)
			appendPair(phases, string(name), phase)
		}
		appendPair(root, "phases", phases)
	}

	return root
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func appendScalar(m *yaml.Node, key, value string) {
	appendPair(m, key, scalar(value))
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}

func stringMap(values map[string]string) *yaml.Node {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := mapping()
	for _, k := range keys {
		appendScalar(m, k, values[k])
	}
	return m
}

package cfn

import (
	"fmt"
	"slices"

	"github.com/awslabs/goformation/v7/cloudformation"
	"sigs.k8s.io/yaml"
)

// FormatVersion is the CloudFormation template format version.
const FormatVersion = "2010-09-09"

// Metadata keys written on every resource.
const (
	MetadataPath = "aws:cdk:path"
	MetadataNag  = "cdk_nag"
)

// Template output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Template is a synthesized CloudFormation template.
type Template struct {
	*cloudformation.Template
}

// Synthesize renders the stack into a template.
func (s *Stack) Synthesize() (*Template, error) {
	t := cloudformation.NewTemplate()
	t.AWSTemplateFormatVersion = FormatVersion
	t.Description = s.Description
	if t.Parameters == nil {
		t.Parameters = cloudformation.Parameters{}
	}
	if t.Outputs == nil {
		t.Outputs = cloudformation.Outputs{}
	}
	if t.Resources == nil {
		t.Resources = cloudformation.Resources{}
	}
	for name, p := range s.parameters {
		t.Parameters[name] = p
	}
	for name, o := range s.outputs {
		t.Outputs[name] = o
	}

	for _, r := range s.resources {
		for _, dep := range r.DependsOn {
			if _, ok := s.byLogicalID[dep]; !ok {
				return nil, fmt.Errorf("%s depends on unknown resource %s", r.Path, dep)
			}
		}

		metadata := map[string]any{MetadataPath: r.Path}
		if rules := s.suppressedRules(r); len(rules) > 0 {
			metadata[MetadataNag] = map[string]any{"rules_to_suppress": rules}
		}

		res := r.build(Attributes{
			DependsOn: slices.Sorted(slices.Values(r.DependsOn)),
			Metadata:  metadata,
		})
		if res == nil {
			return nil, fmt.Errorf("failed to render %s: builder returned no resource", r.Path)
		}
		if got := res.AWSCloudFormationType(); got != r.Type {
			return nil, fmt.Errorf("failed to render %s: declared as %s, built as %s", r.Path, r.Type, got)
		}
		t.Resources[r.LogicalID] = res
	}

	return &Template{Template: t}, nil
}

// Render renders the template in the given format, "json" or "yaml".
// YAML is converted from the JSON rendering so both carry the same content.
func (t *Template) Render(format string) ([]byte, error) {
	switch format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: unsupported template format %q", ErrInvalidArgument, format)
	}

	data, err := t.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template: %w", err)
	}
	if format == FormatJSON {
		return append(data, '\n'), nil
	}

	data, err = yaml.JSONToYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert template to YAML: %w", err)
	}
	return data, nil
}

// ResourcesOfType returns the logical IDs of all resources of the given type, sorted.
func (t *Template) ResourcesOfType(resourceType string) []string {
	var ids []string
	for id, r := range t.Resources {
		if r.AWSCloudFormationType() == resourceType {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// ResourceCounts returns the number of resources per resource type.
func (t *Template) ResourceCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range t.Resources {
		counts[r.AWSCloudFormationType()]++
	}
	return counts
}

package cfn

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/awslabs/goformation/v7/cloudformation"

	"github.com/imamik/repokit/internal/nag"
	"github.com/imamik/repokit/internal/util/naming"
)

// Attributes are the resource attributes computed by the stack at synthesis.
type Attributes struct {
	DependsOn []string
	Metadata  map[string]any
}

// Builder renders a declared resource. It runs on every synthesis, so
// resources whose content grows after declaration pick up the latest state.
type Builder func(Attributes) cloudformation.Resource

// Resource is a single declared CloudFormation resource.
type Resource struct {
	Path      string
	LogicalID string
	Type      string
	DependsOn []string

	build Builder
}

// Stack is an ordered, path-addressed set of resources.
type Stack struct {
	Name        string
	Account     string
	Region      string
	Description string

	resources    []*Resource
	byPath       map[string]*Resource
	byLogicalID  map[string]*Resource
	suppressions []nag.Suppression
	parameters   map[string]cloudformation.Parameter
	outputs      map[string]cloudformation.Output
}

// NewStack creates an empty stack.
func NewStack(name, account, region string) (*Stack, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: stack name is required", ErrInvalidArgument)
	}
	if strings.Contains(name, naming.PathSeparator) {
		return nil, fmt.Errorf("%w: stack name %q must not contain %q", ErrInvalidArgument, name, naming.PathSeparator)
	}

	return &Stack{
		Name:        name,
		Account:     account,
		Region:      region,
		byPath:      make(map[string]*Resource),
		byLogicalID: make(map[string]*Resource),
		parameters:  make(map[string]cloudformation.Parameter),
		outputs:     make(map[string]cloudformation.Output),
	}, nil
}

// AddResource declares a resource of resourceType at path. The path must lie
// inside the stack and must not be taken.
func (s *Stack) AddResource(path, resourceType string, build Builder) (*Resource, error) {
	if build == nil {
		return nil, fmt.Errorf("%w: no builder for %s", ErrInvalidArgument, path)
	}
	if !strings.HasPrefix(path, s.Name+naming.PathSeparator) {
		return nil, fmt.Errorf("%w: path %q is outside stack %q", ErrInvalidArgument, path, s.Name)
	}
	if _, ok := s.byPath[path]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, path)
	}

	id := LogicalID(path)
	if other, ok := s.byLogicalID[id]; ok {
		return nil, fmt.Errorf("%w: %s and %s both map to logical ID %s", ErrDuplicatePath, other.Path, path, id)
	}

	r := &Resource{
		Path:      path,
		LogicalID: id,
		Type:      resourceType,
		build:     build,
	}
	s.resources = append(s.resources, r)
	s.byPath[path] = r
	s.byLogicalID[id] = r
	return r, nil
}

// Resource returns the resource declared at path.
func (s *Stack) Resource(path string) (*Resource, bool) {
	r, ok := s.byPath[path]
	return r, ok
}

// Resources returns all resources in declaration order.
func (s *Stack) Resources() []*Resource {
	return slices.Clone(s.resources)
}

// ResourcesUnder returns the resources at scope or below it.
func (s *Stack) ResourcesUnder(scope string) []*Resource {
	var out []*Resource
	for _, r := range s.resources {
		if inScope(r.Path, scope, true) {
			out = append(out, r)
		}
	}
	return out
}

// AddSuppression registers scanner suppressions for scope. A recursive
// suppression covers every resource below scope; otherwise only the
// resource at scope or its default child. At least one resource must match.
func (s *Stack) AddSuppression(scope string, rules []nag.Rule, recursive bool) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: no rules to suppress on %s", ErrInvalidArgument, scope)
	}
	var errs []error
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if !slices.ContainsFunc(s.resources, func(r *Resource) bool { return inScope(r.Path, scope, recursive) }) {
		return fmt.Errorf("%w: %s", ErrUnmatchedPath, scope)
	}

	s.suppressions = append(s.suppressions, nag.Suppression{
		Rules:     slices.Clone(rules),
		Recursive: recursive,
		Path:      scope,
	})
	return nil
}

// Suppressions returns the registered suppressions in order.
func (s *Stack) Suppressions() []nag.Suppression {
	return slices.Clone(s.suppressions)
}

// suppressedRules returns the rules suppressed on r, first registration wins
// per rule ID.
func (s *Stack) suppressedRules(r *Resource) []nag.Rule {
	var rules []nag.Rule
	for _, sup := range s.suppressions {
		if !inScope(r.Path, sup.Path, sup.Recursive) {
			continue
		}
		for _, rule := range sup.Rules {
			if !slices.ContainsFunc(rules, func(x nag.Rule) bool { return x.ID == rule.ID }) {
				rules = append(rules, rule)
			}
		}
	}
	return rules
}

// AddParameter declares a template parameter. Redeclaring a parameter with
// the same type and description is a no-op.
func (s *Stack) AddParameter(name string, p cloudformation.Parameter) error {
	if existing, ok := s.parameters[name]; ok {
		if existing.Type != p.Type || cloudformation.StringValue(existing.Description) != cloudformation.StringValue(p.Description) {
			return fmt.Errorf("%w: parameter %s already declared", ErrInvalidArgument, name)
		}
		return nil
	}
	s.parameters[name] = p
	return nil
}

// AddOutput declares a template output.
func (s *Stack) AddOutput(name string, o cloudformation.Output) error {
	if _, ok := s.outputs[name]; ok {
		return fmt.Errorf("%w: output %s already declared", ErrInvalidArgument, name)
	}
	s.outputs[name] = o
	return nil
}

func inScope(path, scope string, recursive bool) bool {
	if path == scope || path == scope+naming.PathSeparator+defaultChildID {
		return true
	}
	return recursive && strings.HasPrefix(path, scope+naming.PathSeparator)
}

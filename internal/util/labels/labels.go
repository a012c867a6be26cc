package labels

import (
	"maps"
	"slices"
)

// Standard tag keys for synthesized resources.
const (
	// KeyApplication identifies which application a resource belongs to
	KeyApplication = "repokit:application"

	// KeyStack identifies the stack a resource was synthesized into
	KeyStack = "repokit:stack"

	// KeyComponent identifies the role of a resource (repository, pull-request-check)
	KeyComponent = "repokit:component"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "repokit:managed-by"
)

// Component values
const (
	ComponentRepository       = "repository"
	ComponentReviewer         = "reviewer"
	ComponentApproval         = "approval"
	ComponentPullRequestCheck = "pull-request-check"
)

// ManagedByRepokit is the default KeyManagedBy value.
const ManagedByRepokit = "repokit"

// Tag is a CloudFormation resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// LabelBuilder provides a fluent interface for building resource tags.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the application name pre-set.
func NewLabelBuilder(application string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyApplication: application,
			KeyManagedBy:   ManagedByRepokit,
		},
	}
}

// WithStack adds the stack name.
func (lb *LabelBuilder) WithStack(stack string) *LabelBuilder {
	lb.labels[KeyStack] = stack
	return lb
}

// WithComponent adds a component label (e.g., "repository", "pull-request-check").
func (lb *LabelBuilder) WithComponent(component string) *LabelBuilder {
	lb.labels[KeyComponent] = component
	return lb
}

// WithManagedBy sets who manages this resource.
func (lb *LabelBuilder) WithManagedBy(manager string) *LabelBuilder {
	lb.labels[KeyManagedBy] = manager
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	maps.Copy(lb.labels, extra)
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	return maps.Clone(lb.labels)
}

// Tags returns the labels as a CloudFormation tag list sorted by key.
// Empty values are left out.
func (lb *LabelBuilder) Tags() []Tag {
	tags := make([]Tag, 0, len(lb.labels))
	for _, k := range slices.Sorted(maps.Keys(lb.labels)) {
		if lb.labels[k] == "" {
			continue
		}
		tags = append(tags, Tag{Key: k, Value: lb.labels[k]})
	}
	return tags
}

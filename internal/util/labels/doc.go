// Package labels provides consistent tagging for synthesized resources.
//
// All tag keys use the repokit: prefix and follow a builder pattern for
// constructing tag sets with application, stack, component and manager
// identification.
package labels

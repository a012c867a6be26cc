// Package naming provides consistent naming functions for synthesized resources.
//
// Construct paths follow the pattern {stack}/{construct}/{child} and are
// the identity of a resource inside a stack. Physical names that are not
// taken verbatim from configuration are derived from the application name
// so that several repositories can live in one account.
package naming

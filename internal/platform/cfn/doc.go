// Package cfn implements the provisioning engine on top of an in-memory
// CloudFormation resource graph.
//
// Every collaborator call declares one or more resources in a [Stack] at a
// construct path of the form {stack}/{construct}/{child}. Paths are unique;
// logical IDs are derived from them the way the CDK does, so a repository
// synthesizes to the same template on every run. Security-scanner
// suppressions are attached to resource metadata under cdk_nag.
//
// Resources are goformation types. Each is rendered by a [Builder] on
// [Stack.Synthesize], which hands it the dependencies and metadata the stack
// computed, so permissions granted after declaration still reach the
// template. The result renders as JSON or YAML for deployment by
// CloudFormation.
package cfn

// Package orchestration provides high-level workflow coordination for
// repository synthesis.
//
// The Synthesizer wires a configuration to the in-memory CloudFormation
// engine, runs the repository provisioner against it and renders the
// resulting artifacts.
//
// # Workflow
//
//  1. Stack - a stack is created from the configured name, account and region
//  2. Provisioning - the repository phases declare resources into the stack
//  3. Rendering - the template and the pull-request buildspec are encoded
//
// # Usage
//
//	result, err := orchestration.NewSynthesizer(cfg).Synthesize(ctx)
//	paths, err := result.WriteFiles("cdk.out")
//
// Synthesis has no side effects outside the returned Result.
package orchestration

// Package provisioning provides shared types, interfaces, and orchestration for
// repository provisioning.
//
// # Subpackages
//
//   - repository/: CodeCommit repository, reviewer, approval rule, PR check, suppressions
//
// # Core Types
//
// Context carries configuration, state, the provisioning engine, and the observer.
// Phase defines a provisioning step with Name() and Provision() methods.
// State accumulates results from each phase (repository, pipeline source, PR check).
// Engine is the set of collaborator interfaces a provisioning backend implements.
package provisioning

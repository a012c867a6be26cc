// Package repository provides the provisioning phases for a managed source
// repository.
//
// The phases run strictly in order and each calls the provisioning engine:
//
//   - repository: the CodeCommit repository and its pipeline source
//   - reviewer: the optional CodeGuru Reviewer association
//   - approval: the mandatory single-approver rule template
//   - pull-request-check: the validation build and its role grants
//   - suppressions: the documented scanner suppressions
//
// Any engine error aborts the run. Nothing is retried.
package repository

// Package main is the entry point for the repokit CLI.
//
// repokit turns a small YAML description of an application's source
// repository into a CloudFormation template: a CodeCommit repository with a
// mandatory approval rule, an optional CodeGuru reviewer and a CodeBuild
// pull-request check.
//
// Commands: init, validate, synth, publish, whoami.
//
// For detailed usage information, run:
//
//	repokit --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/repokit/cmd/repokit/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package handlers

import (
	"fmt"

	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/ui/summary"
	"github.com/imamik/repokit/internal/util/prerequisites"
)

// checkDeployTools looks up the deploy tools in PATH.
var checkDeployTools = prerequisites.CheckDeploy

// Validate loads a configuration and reports every validation problem.
// With checkTools the deploy tools are looked up as well.
func Validate(configPath string, checkTools bool) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s is invalid:\n%w", path, err)
	}

	var extra []summary.Section
	if checkTools {
		extra = append(extra, toolSection(checkDeployTools()))
	}

	fmt.Fprint(stdout, renderConfigSummary(path, cfg, isInteractiveTTY(), extra...))
	printMissingEnvironment(cfg)
	return nil
}

// printMissingEnvironment warns about identity values synth will need.
func printMissingEnvironment(cfg *config.Config) {
	if cfg.Stack.Account == "" {
		fmt.Fprintf(stdout, "Note: stack.account is not set; grants will use ${AWS::AccountId}. Export %s or run synth with --resolve-account to pin it.\n",
			config.EnvCDKDefaultAccount)
	}
	if cfg.Stack.Region == "" {
		fmt.Fprintf(stdout, "Note: stack.region is not set; grants will use ${AWS::Region}. Export %s or %s to pin it.\n",
			config.EnvCDKDefaultRegion, config.EnvAWSRegion)
	}
}

func toolSection(results *prerequisites.CheckResults) summary.Section {
	s := summary.Section{Title: "Deploy tools"}
	for _, r := range results.Results {
		row := summary.Row{Label: r.Tool.Name}
		switch {
		case r.Found && r.Version != "":
			row.Status, row.Value = summary.StatusOK, r.Version
		case r.Found:
			row.Status, row.Value = summary.StatusOK, r.Path
		default:
			row.Status, row.Value = summary.StatusSkipped, "not found: "+r.Tool.InstallURL
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

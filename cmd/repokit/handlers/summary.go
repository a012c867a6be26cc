package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/imamik/repokit/internal/config"
	"github.com/imamik/repokit/internal/orchestration"
	"github.com/imamik/repokit/internal/ui/summary"
	"github.com/imamik/repokit/internal/util/naming"
)

// renderSynthSummary describes a synthesis result and where its artifacts went.
func renderSynthSummary(result *orchestration.Result, locations []string, styled bool) string {
	state := result.State
	d := summary.Data{
		Title:    "repokit: " + result.StackName,
		Subtitle: fmt.Sprintf("(%s/%s)", result.Account, result.Region),
	}

	repo := summary.Section{Title: "Repository"}
	if result.PipelineSource != nil {
		repo.Rows = append(repo.Rows,
			summary.Row{Label: "Repository", Value: result.PipelineSource.Repository.Name, Status: summary.StatusOK},
			summary.Row{Label: "Pipeline branch", Value: result.PipelineSource.Branch, Status: summary.StatusOK},
		)
	}
	if state.ReviewerAssociated {
		repo.Rows = append(repo.Rows, summary.Row{Label: "CodeGuru reviewer", Value: "associated", Status: summary.StatusOK})
	} else {
		repo.Rows = append(repo.Rows, summary.Row{Label: "CodeGuru reviewer", Value: "disabled", Status: summary.StatusSkipped})
	}
	if state.ApprovalTemplateName != "" {
		repo.Rows = append(repo.Rows, summary.Row{Label: "Approval rule", Value: state.ApprovalTemplateName, Status: summary.StatusOK})
	}

	check := summary.Section{Title: "Pull-request check"}
	for _, c := range result.Checks {
		check.Rows = append(check.Rows, summary.Row{Label: "Project", Value: c.Name(), Status: summary.StatusOK})
	}
	for _, g := range state.Grants {
		check.Rows = append(check.Rows, summary.Row{Label: "Grant", Value: strings.Join(g.Actions, ", ")})
	}

	suppressions := summary.Section{Title: "Scanner suppressions"}
	for _, s := range state.Suppressions {
		suppressions.Rows = append(suppressions.Rows, summary.Row{
			Label: strings.Join(s.RuleIDs(), ", "),
			Value: s.Path,
		})
	}

	d.Sections = []summary.Section{repo, check, suppressions, resourceSection(result), locationSection(locations)}
	d.Footer = "Deploy the template with your pipeline or: aws cloudformation deploy --template-file " + result.TemplateFile()
	return summary.Render(d, styled)
}

func resourceSection(result *orchestration.Result) summary.Section {
	counts := result.Template.ResourceCounts()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	s := summary.Section{Title: "Template resources"}
	for _, t := range types {
		s.Rows = append(s.Rows, summary.Row{Label: t, Value: fmt.Sprintf("%d", counts[t])})
	}
	return s
}

func locationSection(locations []string) summary.Section {
	s := summary.Section{Title: "Artifacts"}
	for _, l := range locations {
		s.Rows = append(s.Rows, summary.Row{Label: l})
	}
	return s
}

// renderConfigSummary describes a valid configuration.
func renderConfigSummary(path string, cfg *config.Config, styled bool, extra ...summary.Section) string {
	reviewer := summary.Row{Label: "CodeGuru reviewer", Value: "enabled", Status: summary.StatusOK}
	if !cfg.Repository.CodeGuruReviewer {
		reviewer = summary.Row{Label: "CodeGuru reviewer", Value: "disabled", Status: summary.StatusSkipped}
	}

	build := summary.Section{Title: "Pull-request check", Rows: []summary.Row{
		{Label: "Project", Value: naming.PullRequestCheckProject(cfg.Application.Name, cfg.Repository.Name)},
		{Label: "Build image", Value: cfg.Repository.CodeBuild.BuildImage},
	}}
	if cfg.Repository.CodeBuild.IsPrivileged {
		build.Rows = append(build.Rows, summary.Row{Label: "Privileged", Value: "true", Status: summary.StatusWarning})
	}
	if cfg.HasVPC() {
		build.Rows = append(build.Rows, summary.Row{Label: "VPC", Value: cfg.VPC.VPCID})
	}
	if arn := cfg.ProxySecretArn(); arn != "" {
		build.Rows = append(build.Rows, summary.Row{Label: "Proxy secret", Value: arn})
	}

	d := summary.Data{
		Title:    "repokit: " + cfg.Stack.Name,
		Subtitle: "(" + path + ")",
		Sections: []summary.Section{
			{Title: "Repository", Rows: []summary.Row{
				{Label: "Repository", Value: cfg.Repository.Name},
				{Label: "Pipeline branch", Value: cfg.Repository.Branch},
				{Label: "Approval rule", Value: naming.ApprovalRuleTemplate(cfg.Application.Name)},
				reviewer,
			}},
			build,
		},
		Footer: "Configuration is valid.",
	}
	d.Sections = append(d.Sections, extra...)
	return summary.Render(d, styled)
}

// Package prerequisites checks for the client tools used around a
// synthesized repository stack.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DeployTools returns the tools used to deploy a template and work with the
// repository afterwards. None of them is needed to synthesize.
func DeployTools() []Tool {
	return []Tool{
		{
			Name:        "aws",
			Description: "Deploys the synthesized template with cloudformation deploy",
			InstallURL:  "https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html",
		},
		{
			Name:        "git",
			Description: "Clones and pushes to the CodeCommit repository",
			InstallURL:  "https://git-scm.com/downloads",
		},
		{
			Name:        "git-remote-codecommit",
			Description: "Authenticates git against CodeCommit with AWS credentials",
			InstallURL:  "https://github.com/aws/git-remote-codecommit",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// lookPath is exec.LookPath, replaceable in tests.
var lookPath = exec.LookPath

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = getToolVersion(path)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDeploy checks the deploy tools.
func CheckDeploy() *CheckResults {
	return Check(DeployTools())
}

// getToolVersion returns the first line of "<tool> --version", or "" when
// the tool does not answer.
func getToolVersion(path string) string {
	// #nosec G204 - path comes from trusted Tool definitions, not user input
	output, err := exec.Command(path, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}

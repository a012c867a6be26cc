package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testData() Data {
	return Data{
		Title:    "repokit: app-core",
		Subtitle: "(123456789012/eu-central-1)",
		Sections: []Section{
			{Title: "Resources", Rows: []Row{
				{Label: "Repository", Value: "my-repo", Status: StatusOK},
				{Label: "Reviewer", Value: "disabled", Status: StatusSkipped},
				{Label: "Privileged", Value: "true", Status: StatusWarning},
			}},
			{Title: "Empty"},
			{Title: "Files", Rows: []Row{{Label: "cdk.out/buildspec.yml"}}},
		},
		Footer: "Deploy with cdk deploy",
	}
}

func TestRender_Plain(t *testing.T) {
	t.Parallel()
	out := Render(testData(), false)

	assert.Contains(t, out, "repokit: app-core (123456789012/eu-central-1)")
	assert.Contains(t, out, "[OK] Repository  my-repo")
	assert.Contains(t, out, "[--] Reviewer    disabled")
	assert.Contains(t, out, "[??] Privileged  true")
	assert.Contains(t, out, "     cdk.out/buildspec.yml")
	assert.Contains(t, out, "Deploy with cdk deploy")
	assert.NotContains(t, out, "Empty")
	assert.NotContains(t, out, "\x1b[")
}

func TestRender_SectionOrder(t *testing.T) {
	t.Parallel()
	out := Render(testData(), false)

	assert.Less(t, strings.Index(out, "Resources"), strings.Index(out, "Files"))
}

func TestRender_Styled(t *testing.T) {
	t.Parallel()
	out := Render(testData(), true)

	// Colors depend on the detected terminal profile; text content does not.
	assert.Contains(t, out, "repokit: app-core")
	assert.Contains(t, out, "Repository")
	assert.Contains(t, out, checkMark)
}

func TestRender_NoFooterNoSubtitle(t *testing.T) {
	t.Parallel()
	out := Render(Data{Title: "repokit: x"}, false)

	assert.Equal(t, "\nrepokit: x\n", out)
}

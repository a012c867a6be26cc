package summary

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	readyStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	skipMark  = "[--]"
	warnMark  = "[??]"
	noMark    = "    "
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func plain(s string) string { return s }

// theme is the set of styles used by one rendering.
type theme struct {
	title, subtitle, section, ready, warning, dim styleFunc
}

func newTheme(styled bool) theme {
	if !styled {
		return theme{plain, plain, plain, plain, plain, plain}
	}
	return theme{
		title:    sf(titleStyle),
		subtitle: sf(subtitleStyle),
		section:  sf(sectionStyle),
		ready:    sf(readyStyle),
		warning:  sf(warningStyle),
		dim:      sf(dimStyle),
	}
}

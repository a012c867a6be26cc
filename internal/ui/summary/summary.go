// Package summary renders the terminal summary printed after synthesis.
//
// Output is styled with lipgloss when written to a terminal and plain
// otherwise, so that CI logs stay free of escape sequences.
package summary

import (
	"strings"
)

// Status marks a row.
type Status int

const (
	// StatusNone renders no marker.
	StatusNone Status = iota
	// StatusOK marks a created resource.
	StatusOK
	// StatusSkipped marks an optional resource that was not created.
	StatusSkipped
	// StatusWarning marks something worth a second look.
	StatusWarning
)

// Row is a labelled value.
type Row struct {
	Label  string
	Value  string
	Status Status
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Rows  []Row
}

// Data is everything a summary shows.
type Data struct {
	Title    string
	Subtitle string
	Sections []Section
	Footer   string
}

// Render renders d. Empty sections are omitted.
func Render(d Data, styled bool) string {
	t := newTheme(styled)
	var b strings.Builder

	renderHeader(&b, t, d)
	for _, s := range d.Sections {
		if len(s.Rows) == 0 {
			continue
		}
		renderSection(&b, t, s)
	}
	if d.Footer != "" {
		b.WriteString("\n")
		b.WriteString(t.dim(d.Footer))
		b.WriteString("\n")
	}
	return b.String()
}

func renderHeader(b *strings.Builder, t theme, d Data) {
	b.WriteString("\n")
	b.WriteString(t.title(d.Title))
	if d.Subtitle != "" {
		b.WriteString(" ")
		b.WriteString(t.subtitle(d.Subtitle))
	}
	b.WriteString("\n")
}

func renderSection(b *strings.Builder, t theme, s Section) {
	b.WriteString("\n")
	b.WriteString(t.section(s.Title))
	b.WriteString("\n")

	width := 0
	for _, r := range s.Rows {
		width = max(width, len(r.Label))
	}

	for _, r := range s.Rows {
		b.WriteString("  ")
		b.WriteString(marker(t, r.Status))
		b.WriteString(" ")
		b.WriteString(r.Label)
		if r.Value != "" {
			b.WriteString(strings.Repeat(" ", width-len(r.Label)+2))
			if r.Status == StatusSkipped {
				b.WriteString(t.dim(r.Value))
			} else {
				b.WriteString(r.Value)
			}
		}
		b.WriteString("\n")
	}
}

func marker(t theme, s Status) string {
	switch s {
	case StatusOK:
		return t.ready(checkMark)
	case StatusSkipped:
		return t.dim(skipMark)
	case StatusWarning:
		return t.warning(warnMark)
	default:
		return noMark
	}
}

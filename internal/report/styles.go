package report

import "github.com/charmbracelet/lipgloss"

// Palette of the consolidation report. Lipgloss degrades the ANSI colors
// to what the terminal supports.
var (
	// locationStyle marks the file:line:col prefix of an issue.
	locationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// errorStyle marks malformed markers and undecodable payloads.
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	// warningStyle marks non-fatal issues and the caret under a marker.
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// rewrittenStyle marks files whose injection calls were merged and a
	// clean summary.
	rewrittenStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// mutedStyle marks untouched files and the pass suffix.
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// severityStyle returns the style for an issue's message.
func severityStyle(severity string) lipgloss.Style {
	if severity == SeverityError {
		return errorStyle
	}
	return warningStyle
}

// render applies style when the reporter uses colors.
func (r *Reporter) render(style lipgloss.Style, text string) string {
	if !r.useColors {
		return text
	}
	return style.Render(text)
}

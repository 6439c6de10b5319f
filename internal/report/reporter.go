package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// maxLineWidth caps how much of a source line is echoed. Bundled output is
// often a single very long line.
const maxLineWidth = 160

// Options configures a Reporter.
type Options struct {
	UseColors  bool
	PrintLines bool
	PrintPass  bool
}

// Reporter formats diagnostics and run summaries.
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
	printPass  bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  opts.UseColors,
		printLines: opts.PrintLines,
		printPass:  opts.PrintPass,
	}
}

// ShouldUseColors resolves a color mode ("always", "never" or "auto") to a
// decision. Auto enables colors for CI systems that render them and for
// terminals.
func ShouldUseColors(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// SortIssues orders issues by file, line and column.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// PrintIssues outputs issues in golangci-lint format.
func (r *Reporter) PrintIssues(issues []Issue) {
	SortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue prints `file:line:col: message (pass)` and the source line
// with a caret under the column.
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	passSuffix := ""
	if r.printPass && issue.Pass != "" {
		passSuffix = fmt.Sprintf(" (%s)", issue.Pass)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		r.render(locationStyle, location),
		r.render(severityStyle(issue.Severity), issue.Text),
		r.render(mutedStyle, passSuffix))

	if r.printLines && len(issue.SourceLines) > 0 {
		line, column := excerpt(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", line)
		fmt.Fprintf(r.w, "\t%s\n", r.render(warningStyle, buildCaretIndicator(line, column)))
	}
}

// excerpt shortens line to a window around column and returns the column
// relative to the window.
func excerpt(line string, column int) (string, int) {
	if len(line) <= maxLineWidth {
		return line, column
	}

	start := column - 1 - maxLineWidth/3
	if start < 0 {
		start = 0
	}
	end := start + maxLineWidth
	if end > len(line) {
		end = len(line)
	}

	out := strings.ToValidUTF8(line[start:end], "")
	if start > 0 {
		out = "..." + out
		column = column - start + 3
	}
	if end < len(line) {
		out += "..."
	}
	return out, column
}

// buildCaretIndicator creates the "^" indicator aligned with the column,
// copying tabs from the prefix so it lines up in any tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// Summary is the outcome of a run as shown to the user.
type Summary struct {
	Files   int
	Changed int
	Markers int
	Issues  []Issue
}

// PrintSummary outputs file and issue counts.
func (r *Reporter) PrintSummary(s Summary) {
	var errors, warnings int
	for _, issue := range s.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s, %s rewritten, %s merged\n",
		pluralizeCount(s.Files, "file", "files"),
		pluralizeCount(s.Changed, "file", "files"),
		pluralizeCount(s.Markers, "marker", "markers"))

	if len(s.Issues) == 0 {
		fmt.Fprintln(r.w, r.render(rewrittenStyle, "0 issues."))
		return
	}

	if errors > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(len(s.Issues), "issue", "issues"),
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(len(s.Issues), "issue", "issues"))
	}

	passCounts := make(map[string]int)
	for _, issue := range s.Issues {
		passCounts[issue.Pass]++
	}
	passes := make([]string, 0, len(passCounts))
	for pass := range passCounts {
		passes = append(passes, pass)
	}
	sort.Strings(passes)
	for _, pass := range passes {
		fmt.Fprintf(r.w, "* %s: %d\n", pass, passCounts[pass])
	}
}

// PrintFile reports one processed file in verbose mode.
func (r *Reporter) PrintFile(path string, markers int, changed bool) {
	if !changed {
		fmt.Fprintf(r.w, "%s %s\n", r.render(mutedStyle, "-"), path)
		return
	}
	fmt.Fprintf(r.w, "%s %s (%s)\n",
		r.render(rewrittenStyle, "✓"),
		path,
		pluralizeCount(markers, "marker", "markers"))
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

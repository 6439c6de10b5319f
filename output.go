package cssvariant

import (
	"fmt"
	"io"

	"github.com/yacobolo/cssvariant/internal/report"
)

// OutputFormat selects how a batch result is written.
type OutputFormat string

const (
	// OutputText prints issues in golangci-lint format and a summary.
	OutputText OutputFormat = "text"
	// OutputJSON prints a machine readable document.
	OutputJSON OutputFormat = "json"
)

// OutputOptions configures WriteOutput.
type OutputOptions struct {
	UseColors bool
	// Verbose lists every processed file before the issues.
	Verbose bool
	// Quiet suppresses all text output; JSON is still written.
	Quiet bool
}

// ParseOutputFormat validates a format name. The empty string selects
// text output.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", name)
}

// WriteOutput writes result in the given format.
func WriteOutput(w io.Writer, result *BatchResult, format OutputFormat, opts OutputOptions) error {
	if format == OutputJSON {
		return WriteJSON(w, result)
	}
	if opts.Quiet {
		return nil
	}

	reporter := report.NewReporter(w, report.Options{
		UseColors:  opts.UseColors,
		PrintLines: true,
		PrintPass:  true,
	})
	if opts.Verbose {
		for _, f := range result.Files {
			reporter.PrintFile(displayPath(f.Path, result.BaseDir), f.Markers, f.Changed)
		}
	}
	reporter.PrintIssues(result.Issues)
	reporter.PrintSummary(report.Summary{
		Files:   len(result.Files),
		Changed: result.Changed(),
		Markers: result.Markers(),
		Issues:  result.Issues,
	})
	return nil
}

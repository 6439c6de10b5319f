package cssvariant

import (
	"io"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Files     []JSONFile  `json:"files"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesScanned    int `json:"files_scanned"`
	FilesSkipped    int `json:"files_skipped"`
	FilesChanged    int `json:"files_changed"`
	Markers         int `json:"markers"`
	TotalIssues     int `json:"total_issues"`
}

// JSONFile describes one consolidated file
type JSONFile struct {
	Path     string `json:"path"`
	OutPath  string `json:"out_path"`
	Changed  bool   `json:"changed"`
	Markers  int    `json:"markers"`
	Key      string `json:"key,omitempty"`
	CSSBytes int    `json:"css_bytes"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Pass     string `json:"pass"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the batch result as indented JSON
func WriteJSON(w io.Writer, result *BatchResult) error {
	return json.MarshalWrite(w, buildJSONOutput(result, time.Now()), jsontext.WithIndent("  "))
}

// buildJSONOutput converts BatchResult to JSONOutput
func buildJSONOutput(result *BatchResult, now time.Time) JSONOutput {
	files := make([]JSONFile, len(result.Files))
	for i, f := range result.Files {
		files[i] = JSONFile{
			Path:     displayPath(f.Path, result.BaseDir),
			OutPath:  displayPath(f.OutPath, result.BaseDir),
			Changed:  f.Changed,
			Markers:  f.Markers,
			Key:      f.Key,
			CSSBytes: f.CSSBytes,
		}
	}

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Offset:   issue.Pos.Offset,
			Severity: issue.Severity,
			Message:  issue.Text,
			Pass:     issue.Pass,
			Source:   source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			FilesDiscovered: result.Stats.FilesDiscovered,
			FilesScanned:    result.Stats.FilesScanned,
			FilesSkipped:    result.Stats.FilesSkipped,
			FilesChanged:    result.Changed(),
			Markers:         result.Markers(),
			TotalIssues:     len(result.Issues),
		},
		Files:  files,
		Issues: issues,
	}
}

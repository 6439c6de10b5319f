package report

import "strings"

// Issue is a single diagnostic in golangci-lint format.
type Issue struct {
	Pass        string   `json:"Pass"`        // "consolidate", "recipe"
	Text        string   `json:"Text"`        // "malformed injection marker at offset 12: missing end delimiter"
	Severity    string   `json:"Severity"`    // "error", "warning"
	SourceLines []string `json:"SourceLines"` // Line the issue points at
	Pos         IssuePos `json:"Pos"`
}

// IssuePos is the location of an issue.
type IssuePos struct {
	Filename string `json:"Filename"`
	Offset   int    `json:"Offset"` // byte offset into the file
	Line     int    `json:"Line"`   // 1-based
	Column   int    `json:"Column"` // 1-based byte column
}

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Pass names.
const (
	PassConsolidate = "consolidate"
	PassRecipe      = "recipe"
)

// PositionAt resolves a byte offset in content to a position and returns it
// together with the text of the line it falls on.
func PositionAt(filename, content string, offset int) (IssuePos, string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	lineEnd := strings.IndexByte(content[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	} else {
		lineEnd += offset
	}

	pos := IssuePos{
		Filename: filename,
		Offset:   offset,
		Line:     strings.Count(content[:lineStart], "\n") + 1,
		Column:   offset - lineStart + 1,
	}
	return pos, strings.TrimRight(content[lineStart:lineEnd], "\r")
}

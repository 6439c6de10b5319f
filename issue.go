package cssvariant

import "github.com/yacobolo/cssvariant/internal/report"

// Issue is a positioned diagnostic in golangci-lint format.
type Issue = report.Issue

// IssuePos is the location of an issue.
type IssuePos = report.IssuePos

// IssueSeverity constants
const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
)

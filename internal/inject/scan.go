package inject

import (
	"regexp"
	"strings"
	"sync"
)

// Marker is the position record of one marked injection call.
//
// Offsets are byte offsets into the scanned text:
//
//	StartIndex    start of the callee expression
//	ContentStart  first byte after the start delimiter
//	ContentEnd    first byte of the end delimiter
//	StatementEnd  first byte after the call, including a trailing ';' or ','
type Marker struct {
	StartIndex   int
	ContentStart int
	ContentEnd   int
	StatementEnd int

	Callee     string
	Quote      byte
	ID         string
	RawContent string
	// Terminator is the ';' or ',' consumed after the call, or 0.
	Terminator byte
}

var (
	callPatterns   = make(map[string]*regexp.Regexp)
	callPatternsMu sync.Mutex
)

// callPattern matches `callee(<ws><quote><id><start>` anchored at the end
// of the searched window.
func callPattern(start string) *regexp.Regexp {
	callPatternsMu.Lock()
	defer callPatternsMu.Unlock()

	if re, ok := callPatterns[start]; ok {
		return re
	}
	re := regexp.MustCompile(
		`([A-Za-z_$][\w$]*(?:\s*\.\s*[A-Za-z_$][\w$]*)*)\(\s*(["'` + "`" + `])([^"'` + "`" + `\\\r\n]*)` +
			regexp.QuoteMeta(start) + `\z`)
	callPatterns[start] = re
	return re
}

// Scan finds every marker in code, in order of appearance.
func Scan(code string, p Protocol) ([]Marker, error) {
	p = p.withDefaults()
	re := callPattern(p.Start)

	var markers []Marker
	pos := 0
	for {
		rel := strings.Index(code[pos:], p.Start)
		if rel < 0 {
			return markers, nil
		}
		startDelim := pos + rel
		contentStart := startDelim + len(p.Start)

		loc := re.FindStringSubmatchIndex(code[pos:contentStart])
		if loc == nil {
			return nil, &MalformedMarkerError{Offset: startDelim, Reason: "start delimiter is not the argument of a call"}
		}

		m := Marker{
			StartIndex:   pos + loc[0],
			ContentStart: contentStart,
			Callee:       stripSpace(code[pos+loc[2] : pos+loc[3]]),
			Quote:        code[pos+loc[4]],
			ID:           code[pos+loc[6] : pos+loc[7]],
		}
		// The callee must be the whole call target. `a[0].inject(` or
		// `a?.inject(` would leave a dangling member prefix behind.
		if j := prevNonSpace(code, m.StartIndex); j >= 0 && (code[j] == '.' || code[j] == '#') {
			return nil, &MalformedMarkerError{Offset: m.StartIndex, Reason: "callee is not a plain identifier or member path"}
		}

		endRel := strings.Index(code[contentStart:], p.End)
		if endRel < 0 {
			return nil, &MalformedMarkerError{Offset: startDelim, Reason: "missing end delimiter"}
		}
		m.ContentEnd = contentStart + endRel
		if strings.Contains(code[contentStart:m.ContentEnd], p.Start) {
			return nil, &MalformedMarkerError{Offset: startDelim, Reason: "start delimiter repeated before end delimiter"}
		}
		m.RawContent = code[m.ContentStart:m.ContentEnd]

		i := m.ContentEnd + len(p.End)
		if i >= len(code) || code[i] != m.Quote {
			return nil, &MalformedMarkerError{Offset: i, Reason: "end delimiter is not followed by the closing quote"}
		}
		i = skipSpace(code, i+1)
		if i >= len(code) || code[i] != ')' {
			return nil, &MalformedMarkerError{Offset: i, Reason: "expected ')' after marked literal"}
		}
		i++
		if i < len(code) && (code[i] == ';' || code[i] == ',') {
			m.Terminator = code[i]
			i++
		}
		m.StatementEnd = i

		markers = append(markers, m)
		pos = i
	}
}

// prevNonSpace returns the index of the last non-space byte before i, or -1.
func prevNonSpace(s string, i int) int {
	for i--; i >= 0; i-- {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return i
		}
	}
	return -1
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

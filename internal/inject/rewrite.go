package inject

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yacobolo/cssvariant/internal/sourcemap"
)

// edit replaces src[start:end] with text. Insertions have start == end.
type edit struct {
	start, end int
	text       string
}

// position tracks a zero-based line and UTF-16 column.
type position struct {
	line, col int
}

func (p *position) advance(s string) {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch {
		case r == '\n':
			p.line++
			p.col = 0
		case r >= 0x10000:
			p.col += 2
		default:
			p.col++
		}
	}
}

// applyEdits rewrites src. When b is non-nil it records a mapping at the
// start of every kept chunk and every kept line, and one for each insertion
// pointing at its anchor in src.
func applyEdits(src string, edits []edit, b *sourcemap.Builder) string {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end-edits[i].start < edits[j].end-edits[j].start
	})

	var out strings.Builder
	out.Grow(len(src))

	var gen, orig position
	cursor := 0

	keep := func(chunk string) {
		cursor += len(chunk)
		if b == nil {
			out.WriteString(chunk)
			return
		}
		for chunk != "" {
			b.Add(gen.line, gen.col, orig.line, orig.col)
			line := chunk
			if nl := strings.IndexByte(chunk, '\n'); nl >= 0 {
				line = chunk[:nl+1]
			}
			out.WriteString(line)
			gen.advance(line)
			orig.advance(line)
			chunk = chunk[len(line):]
		}
	}

	for _, e := range edits {
		if e.start < cursor {
			continue
		}
		keep(src[cursor:e.start])
		if e.text != "" {
			out.WriteString(e.text)
			if b != nil {
				b.Add(gen.line, gen.col, orig.line, orig.col)
				gen.advance(e.text)
			}
		}
		if b != nil {
			orig.advance(src[e.start:e.end])
		}
		cursor = e.end
	}
	keep(src[cursor:])

	return out.String()
}

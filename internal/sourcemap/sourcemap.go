// Package sourcemap builds Source Map v3 documents for text rewrites.
package sourcemap

import (
	"encoding/base64"
	"strings"

	"github.com/go-json-experiment/json"
)

// Map is a Source Map v3 document.
type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// JSON encodes m.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// DataURL returns m as a base64 data URL suitable for a sourceMappingURL
// comment.
func (m *Map) DataURL() (string, error) {
	b, err := m.JSON()
	if err != nil {
		return "", err
	}
	return "data:application/json;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(b), nil
}

// Builder accumulates mappings for a single source. Mappings must be added
// in generated order.
type Builder struct {
	file    string
	source  string
	content string

	sb           strings.Builder
	genLine      int
	prevGenCol   int
	prevSrcLine  int
	prevSrcCol   int
	lineHasEntry bool
}

// NewBuilder returns a builder for a map of file whose only source is
// source with the given content.
func NewBuilder(file, source, content string) *Builder {
	return &Builder{file: file, source: source, content: content}
}

// Add maps generated position (genLine, genCol) to source position
// (srcLine, srcCol). Lines and columns are zero based; columns count UTF-16
// code units.
func (b *Builder) Add(genLine, genCol, srcLine, srcCol int) {
	for b.genLine < genLine {
		b.sb.WriteByte(';')
		b.genLine++
		b.prevGenCol = 0
		b.lineHasEntry = false
	}
	if b.lineHasEntry {
		b.sb.WriteByte(',')
	}
	writeVLQ(&b.sb, genCol-b.prevGenCol)
	writeVLQ(&b.sb, 0)
	writeVLQ(&b.sb, srcLine-b.prevSrcLine)
	writeVLQ(&b.sb, srcCol-b.prevSrcCol)

	b.prevGenCol = genCol
	b.prevSrcLine = srcLine
	b.prevSrcCol = srcCol
	b.lineHasEntry = true
}

// Map returns the finished document.
func (b *Builder) Map() *Map {
	m := &Map{
		Version:  3,
		File:     b.file,
		Sources:  []string{b.source},
		Names:    []string{},
		Mappings: b.sb.String(),
	}
	if b.content != "" {
		m.SourcesContent = []string{b.content}
	}
	return m
}

const base64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func writeVLQ(sb *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 31
		u >>= 5
		if u > 0 {
			digit |= 32
		}
		sb.WriteByte(base64Digits[digit])
		if u == 0 {
			return
		}
	}
}

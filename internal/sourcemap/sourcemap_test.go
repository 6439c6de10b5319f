package sourcemap

import (
	"strings"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVLQ(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{1, "C"},
		{-1, "D"},
		{15, "e"},
		{16, "gB"},
		{-16, "hB"},
		{1000, "w+B"},
	}

	for _, tt := range tests {
		var sb strings.Builder
		writeVLQ(&sb, tt.in)
		assert.Equal(t, tt.want, sb.String(), "vlq(%d)", tt.in)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder("out.js", "in.js", "a\nb")
	b.Add(0, 0, 0, 0)
	b.Add(0, 4, 0, 10)
	b.Add(2, 0, 1, 0)

	m := b.Map()
	assert.Equal(t, 3, m.Version)
	assert.Equal(t, "AAAA,IAAU;;AACV", m.Mappings)
	assert.Equal(t, []string{"in.js"}, m.Sources)
	assert.Equal(t, []string{"a\nb"}, m.SourcesContent)

	raw, err := m.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "out.js", decoded["file"])
	assert.Equal(t, []any{}, decoded["names"])
}

func TestDataURL(t *testing.T) {
	m := NewBuilder("", "in.js", "").Map()
	url, err := m.DataURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:application/json;charset=utf-8;base64,"))
}

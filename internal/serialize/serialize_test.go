package serialize

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFunc struct {
	fn Function
}

func (f fakeFunc) SerializeFunction() Function { return f.fn }

func TestSerializeValues(t *testing.T) {
	obj := NewObject()
	obj.Set("b", 1)
	obj.Set("a", "x")
	obj.Set("data-id", nil)
	obj.Set("b", 2)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, "export var v = null;"},
		{"bool", true, "export var v = true;"},
		{"int", 42, "export var v = 42;"},
		{"float", 0.5, "export var v = 0.5;"},
		{"nan", math.NaN(), "export var v = NaN;"},
		{"string", `a"b`, `export var v = "a\"b";`},
		{"array", []any{1, "two", nil}, `export var v = [1,"two",null];`},
		{"string slice", []string{"a", "b"}, `export var v = ["a","b"];`},
		{"ordered object", obj, `export var v = {b:2,a:"x","data-id":null};`},
		{"map sorted", map[string]any{"z": 1, "a": 2}, `export var v = {a:2,z:1};`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(Module{Exports: []Export{{Name: "v", Value: tt.value}}}, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerializeDefaultExport(t *testing.T) {
	got, err := Serialize(Module{
		Imports: []string{`import 'side-effect.css';`},
		Exports: []Export{{Name: "default", Value: "x"}},
	}, Options{ModuleID: "src/a.css.ts"})
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `import 'side-effect.css';`, lines[0])
	assert.Regexp(t, `^var _[a-z0-9]{6} = "x";$`, lines[1])
	assert.Regexp(t, `^export default _[a-z0-9]{6};$`, lines[2])
}

func TestSerializeSharedObject(t *testing.T) {
	theme := NewObject()
	theme.Set("color", "red")
	root := NewObject()
	root.Set("theme", theme)

	got, err := Serialize(Module{Exports: []Export{
		{Name: "theme", Value: theme},
		{Name: "root", Value: root},
	}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "export var theme = {color:\"red\"};\nexport var root = {theme:theme};", got)
}

func TestSerializeFunctions(t *testing.T) {
	fn := fakeFunc{Function{
		ImportPath: "@pkg/runtime",
		ImportName: "create",
		Args:       []any{map[string]any{"a": 1}},
		Source:     "(props) => {\n  return \"x\";\n}\n",
	}}

	t.Run("constructor call", func(t *testing.T) {
		got, err := Serialize(Module{Exports: []Export{{Name: "one", Value: fn}, {Name: "two", Value: fn}}}, Options{})
		require.NoError(t, err)

		lines := strings.Split(got, "\n")
		require.Len(t, lines, 3)
		assert.Regexp(t, `^import \{ create as _[a-z0-9]{5} \} from '@pkg/runtime';$`, lines[0])
		assert.Regexp(t, `^export var one = _[a-z0-9]{5}\(\{a:1\}\);$`, lines[1])
		assert.Regexp(t, `^export var two = _[a-z0-9]{5}\(\{a:1\}\);$`, lines[2])
	})

	t.Run("inline", func(t *testing.T) {
		got, err := Serialize(Module{Exports: []Export{{Name: "one", Value: fn}}}, Options{InlineFunctions: true})
		require.NoError(t, err)
		assert.Equal(t, "export var one = (props) => {\n  return \"x\";\n};", got)
	})

	t.Run("missing import", func(t *testing.T) {
		_, err := Serialize(Module{Exports: []Export{{Name: "one", Value: fakeFunc{Function{ImportName: "create"}}}}}, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid function serialization params")
	})
}

func TestSerializeUnusedCompositions(t *testing.T) {
	got, err := Serialize(Module{Exports: []Export{{Name: "btn", Value: "comp_a btn_1"}}}, Options{UnusedCompositions: []string{"comp_a"}})
	require.NoError(t, err)
	assert.Equal(t, `export var btn = "btn_1";`, got)
}

func TestSerializeErrors(t *testing.T) {
	circular := NewObject()
	circular.Set("self", []any{circular})

	tests := []struct {
		name    string
		export  Export
		wantErr string
	}{
		{"unsupported type", Export{Name: "v", Value: struct{}{}}, "invalid exports"},
		{"nested unsupported", Export{Name: "v", Value: []any{1, func() {}}}, "at [1]"},
		{"bad export name", Export{Name: "my-export", Value: 1}, "not a valid identifier"},
		{"circular", Export{Name: "v", Value: map[string]any{"a": circular}}, "circular reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(Module{Exports: []Export{tt.export}}, Options{})
			require.Error(t, err)
			assert.Empty(t, got)
			assert.Contains(t, err.Error(), tt.wantErr)

			var serr *SerializationError
			assert.True(t, errors.As(err, &serr))
		})
	}
}

package cssvariant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssvariant/internal/inject"
)

func buttonUnit() Unit {
	return Unit{
		Path: "src/button.css.ts",
		Recipes: []NamedSpec{{
			Name: "button",
			Spec: Spec{
				Base: Class("btn"),
				Variants: []VariantGroup{
					{Name: "size", Selections: []Selection{{Key: "sm", Style: Class("btn-sm")}}},
				},
			},
		}},
		CSS: ".btn {\n  color: red;\n}\n",
	}
}

func groupKeyFor(fileKey string) string {
	if fileKey[0] >= '0' && fileKey[0] <= '9' {
		return "_" + fileKey
	}
	return fileKey
}

func TestBuildModuleProduction(t *testing.T) {
	mod, err := BuildModule(buttonUnit(), ModuleOptions{})
	require.NoError(t, err)

	assert.Equal(t, ".btn{color: red}", mod.CSS)
	assert.Len(t, mod.FileKey, 8)
	require.Len(t, mod.Recipes, 1)
	assert.Equal(t, "btn btn-sm", mod.Recipes[0].Resolve(Props{"size": String("sm")}))

	lines := strings.Split(strings.TrimSuffix(mod.Code, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^import \* as _[a-z0-9]{6} from "virtual:cssvariant/runtime";$`, lines[0])
	assert.Regexp(t, `^import \{ createRuntimeFn as _[a-z0-9]{5} \} from '@vanilla-extract/recipes/createRuntimeFn';$`, lines[1])
	assert.Contains(t, lines[2], `export var button = _`)
	assert.Contains(t, lines[2], `{defaultClassName:"btn",variantClassNames:{size:{sm:"btn-sm"}},defaultVariants:{},compoundVariants:[]}`)
	assert.Contains(t, lines[3], inject.StartMarker+".btn{color: red}"+inject.EndMarker)

	res, err := Consolidate(mod.Code, ConsolidateOptions{})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, mod.CSS, res.CSS)
	assert.Equal(t, groupKeyFor(mod.FileKey), res.Key)
	assert.NotContains(t, res.Code, inject.StartMarker)
}

func TestBuildModuleDeterministic(t *testing.T) {
	a, err := BuildModule(buttonUnit(), ModuleOptions{})
	require.NoError(t, err)
	b, err := BuildModule(buttonUnit(), ModuleOptions{})
	require.NoError(t, err)
	assert.Equal(t, a.Code, b.Code)

	other := buttonUnit()
	other.Path = "src/other.css.ts"
	c, err := BuildModule(other, ModuleOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, a.FileKey, c.FileKey)
}

func TestBuildModuleDevelopment(t *testing.T) {
	unit := buttonUnit()
	unit.Recipes[0].Spec.Base = Rule(map[string]any{"display": "flex"})

	mod, err := BuildModule(unit, ModuleOptions{Mode: ModeDevelopment, RuntimeID: "/@rt"})
	require.NoError(t, err)

	assert.Equal(t, unit.CSS, mod.CSS)
	assert.NotContains(t, mod.Code, inject.StartMarker)
	assert.Contains(t, mod.Code, `from "/@rt";`)
	assert.Contains(t, mod.Code, `.inject("`+mod.FileKey+`", ".btn {\n  color: red;\n}\n\n/*# sourceURL=src/button.css.ts?css */");`)
	assert.True(t, strings.HasPrefix(mod.Recipes[0].Resolve(nil), "button__"))
}

func TestBuildModuleWithoutCSS(t *testing.T) {
	tests := []struct {
		name string
		unit func() Unit
		opts ModuleOptions
	}{
		{
			name: "skip css",
			unit: buttonUnit,
			opts: ModuleOptions{SkipCSS: true},
		},
		{
			name: "empty css",
			unit: func() Unit {
				u := buttonUnit()
				u.CSS = "/* nothing */\n"
				return u
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := BuildModule(tt.unit(), tt.opts)
			require.NoError(t, err)
			assert.NotContains(t, mod.Code, ".inject(")
			assert.NotContains(t, mod.Code, DefaultRuntimeID)
			assert.Empty(t, mod.CSS)
			assert.Contains(t, mod.Code, "export var button = ")
		})
	}
}

func TestBuildModuleInlineFunctions(t *testing.T) {
	mod, err := BuildModule(buttonUnit(), ModuleOptions{InlineFunctions: true})
	require.NoError(t, err)

	assert.NotContains(t, mod.Code, "createRuntimeFn")
	assert.Contains(t, mod.Code, "export var button = (props) => {\n")
}

func TestBuildModuleExportsAndImports(t *testing.T) {
	unit := buttonUnit()
	unit.Recipes = append(unit.Recipes, NamedSpec{Name: "primary-button", Spec: Spec{Base: Class("primary")}})
	unit.Exports = []Export{{Name: "theme", Value: map[string]any{"color": "base_x theme_1"}}}
	unit.Imports = []string{"./base.css.ts"}
	unit.UnusedCompositions = []string{"base_x"}

	mod, err := BuildModule(unit, ModuleOptions{InlineFunctions: true})
	require.NoError(t, err)

	lines := strings.Split(mod.Code, "\n")
	assert.Equal(t, `import "./base.css.ts";`, lines[1])
	assert.Contains(t, mod.Code, "export var primaryButton = ")
	assert.Contains(t, mod.Code, `export var theme = {color:"theme_1"};`)
}

func TestBuildModuleErrors(t *testing.T) {
	t.Run("duplicate export", func(t *testing.T) {
		unit := buttonUnit()
		unit.Recipes = append(unit.Recipes,
			NamedSpec{Name: "primary-button", Spec: Spec{}},
			NamedSpec{Name: "primaryButton", Spec: Spec{}})

		_, err := BuildModule(unit, ModuleOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "both export primaryButton")
	})

	t.Run("unserializable export", func(t *testing.T) {
		unit := buttonUnit()
		unit.Exports = []Export{{Name: "bad", Value: make(chan int)}}

		_, err := BuildModule(unit, ModuleOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid exports")
	})
}

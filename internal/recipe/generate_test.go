package recipe

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
)

func buttonTable() Table {
	return Table{
		BaseClass: "s-base",
		VariantClasses: []GroupClasses{
			{Group: "size", Selections: []SelectionClass{
				{Key: "sm", ClassName: "s-cls"},
				{Key: "lg", ClassName: "l-cls"},
			}},
			{Group: "tone", Selections: []SelectionClass{
				{Key: "red", ClassName: "r-cls"},
				{Key: "blue", ClassName: "b-cls"},
			}},
		},
		CompoundClasses: []CompoundClass{
			{Match: []Condition{{Group: "size", Value: String("lg")}, {Group: "tone", Value: String("red")}}, ClassName: "lg-red-cls"},
		},
	}
}

func TestGenerateSource(t *testing.T) {
	want := `(props = {}) => {
  let result = "s-base";
  const {"size": v0, "tone": v1} = props;
  if (v0 === "sm") {
    result += " s-cls";
  }
  else if (v0 === "lg") {
    result += " l-cls";
  }
  if (v1 === "red") {
    result += " r-cls";
  }
  else if (v1 === "blue") {
    result += " b-cls";
  }
  if (v0 === "lg" && v1 === "red") {
    result += " lg-red-cls";
  }
  return result;
}
`
	assert.Equal(t, want, Generate(buttonTable()).Source())
}

func TestGenerateSourceShapes(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{
			name:  "base only",
			table: Table{BaseClass: "base"},
		},
		{
			name:  "empty",
			table: Table{},
		},
		{
			name: "variants without defaults",
			table: Table{
				BaseClass: "base",
				VariantClasses: []GroupClasses{
					{Group: "size", Selections: []SelectionClass{{Key: "sm", ClassName: "sm"}}},
				},
			},
		},
		{
			name: "no base with defaults",
			table: Table{
				VariantClasses: []GroupClasses{
					{Group: "disabled", Selections: []SelectionClass{{Key: "true", ClassName: "off"}}},
					{Group: "level", Selections: []SelectionClass{{Key: "1", ClassName: "l1"}, {Key: "2", ClassName: "l2"}}},
				},
				DefaultVariants: []Condition{{Group: "level", Value: Number(1)}},
			},
		},
		{
			name: "compound on undeclared group",
			table: Table{
				BaseClass: "base",
				VariantClasses: []GroupClasses{
					{Group: "size", Selections: []SelectionClass{{Key: "sm", ClassName: "sm"}}},
				},
				CompoundClasses: []CompoundClass{
					{Match: []Condition{{Group: "shape", Value: String("round")}}, ClassName: "never"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps.MatchSnapshot(t, Generate(tt.table).Source())
		})
	}
}

func TestGenerateFlags(t *testing.T) {
	tests := []struct {
		name         string
		table        Table
		defaultProps bool
		guard        bool
		spaceAlways  bool
	}{
		{"base only", Table{BaseClass: "b"}, false, false, true},
		{"variants only", Table{VariantClasses: buttonTable().VariantClasses}, false, true, false},
		{"compounds", buttonTable(), true, false, true},
		{
			name: "defaults",
			table: Table{
				BaseClass:       "b",
				VariantClasses:  buttonTable().VariantClasses,
				DefaultVariants: []Condition{{Group: "size", Value: String("sm")}},
			},
			defaultProps: true,
			spaceAlways:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Generate(tt.table)
			assert.Equal(t, tt.defaultProps, p.DefaultProps, "DefaultProps")
			assert.Equal(t, tt.guard, p.GuardMissing, "GuardMissing")
			assert.Equal(t, tt.guard, p.SafeDestructure, "SafeDestructure")
			assert.Equal(t, tt.spaceAlways, p.SpaceAlways, "SpaceAlways")
		})
	}
}

func TestGenerateSkipsEmptyClasses(t *testing.T) {
	table := Table{
		BaseClass: "b",
		VariantClasses: []GroupClasses{
			{Group: "size", Selections: []SelectionClass{{Key: "sm", ClassName: ""}}},
		},
		CompoundClasses: []CompoundClass{{Match: []Condition{{Group: "size", Value: String("sm")}}}},
	}

	p := Generate(table)
	assert.Empty(t, p.Body)
	assert.Len(t, p.Bindings, 1)
	assert.NotContains(t, p.Source(), "if (v0")
}

func TestGenerateDeterministic(t *testing.T) {
	assert.Equal(t, Generate(buttonTable()).Source(), Generate(buttonTable()).Source())
}

func TestGenerateNeverCondition(t *testing.T) {
	table := Table{
		VariantClasses: []GroupClasses{
			{Group: "size", Selections: []SelectionClass{{Key: "sm", ClassName: "sm"}}},
		},
		CompoundClasses: []CompoundClass{
			{Match: []Condition{{Group: "shape", Value: String("round")}}, ClassName: "never"},
		},
	}

	p := Generate(table)
	assert.Contains(t, p.Source(), "if (false) {")
	assert.Equal(t, "", p.Resolve(Props{"shape": String("round")}))
}

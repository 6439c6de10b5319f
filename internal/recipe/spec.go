package recipe

// Style is either a literal class name or an unresolved style object that a
// StyleResolver turns into one.
type Style struct {
	ClassName string
	Rule      map[string]any
}

// Class returns a literal class name style.
func Class(name string) Style { return Style{ClassName: name} }

// Rule returns an unresolved style object.
func Rule(rule map[string]any) Style {
	if rule == nil {
		rule = map[string]any{}
	}
	return Style{Rule: rule}
}

// IsLiteral reports whether s is already a class name.
func (s Style) IsLiteral() bool { return s.Rule == nil }

// Spec is a user-authored recipe declaration. Slices keep declaration
// order, which decides default and branch emission order.
type Spec struct {
	Base             Style
	Variants         []VariantGroup
	CompoundVariants []CompoundVariant
	DefaultVariants  []Condition
}

// VariantGroup is a named axis of selection with its options.
type VariantGroup struct {
	Name       string
	Selections []Selection
}

// Selection is one option of a variant group.
type Selection struct {
	Key   string
	Style Style
}

// CompoundVariant applies Style when every condition in Match holds.
type CompoundVariant struct {
	Match []Condition
	Style Style
}

// NamedSpec is a recipe declaration together with its export name.
type NamedSpec struct {
	Name string
	Spec Spec
}

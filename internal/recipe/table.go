package recipe

// Table is the resolved form of a recipe: every style is already a class
// name. It is built once per recipe and only read afterwards.
type Table struct {
	BaseClass       string
	VariantClasses  []GroupClasses
	CompoundClasses []CompoundClass
	DefaultVariants []Condition
}

// GroupClasses holds the class names of one variant group in declared order.
type GroupClasses struct {
	Group      string
	Selections []SelectionClass
}

// SelectionClass maps a selection key to its class name. An empty class
// name contributes no branch.
type SelectionClass struct {
	Key       string
	ClassName string
}

// CompoundClass is applied when every condition in Match holds.
type CompoundClass struct {
	Match     []Condition
	ClassName string
}

// Condition pairs a variant group with a selection value.
type Condition struct {
	Group string
	Value Value
}

func (t Table) defaultFor(group string) (Value, bool) {
	for _, d := range t.DefaultVariants {
		if d.Group == group {
			return d.Value, true
		}
	}
	return Value{}, false
}

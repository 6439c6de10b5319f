package recipe

// Program is the intermediate representation of a recipe function. It is
// rendered to JavaScript by Source and interpreted directly by Resolve; both
// back ends walk the same tree so they cannot disagree.
type Program struct {
	// DefaultProps gives the props parameter an empty object default.
	DefaultProps bool
	// Base seeds the accumulator.
	Base string
	// GuardMissing returns the base class early when props is falsy.
	GuardMissing bool
	// SafeDestructure destructures from (props || {}) instead of props.
	SafeDestructure bool
	// SpaceAlways appends fragments with an unconditional leading space.
	// When false the space is only added if the accumulator is non-empty.
	SpaceAlways bool

	Bindings []Binding
	Body     []Stmt
}

// Binding destructures one variant group into a short local variable.
type Binding struct {
	Group      string
	Var        string
	Default    Value
	HasDefault bool
}

// Stmt is a statement of the function body.
type Stmt interface {
	stmt()
}

// IfChain is an if / else if chain; at most one branch runs.
type IfChain struct {
	Branches []Branch
}

func (IfChain) stmt() {}

// Branch appends Class to the accumulator when Cond holds.
type Branch struct {
	Cond  Cond
	Class string
}

// Cond is a branch condition.
type Cond interface {
	cond()
}

// Equals compares a bound variable with a literal using strict equality.
type Equals struct {
	Var   string
	Value Value
}

func (Equals) cond() {}

// All holds when every comparison holds. An empty All is always true.
type All []Equals

func (All) cond() {}

// Never is a condition that cannot hold, used for compound rules that name
// a group the recipe does not declare.
type Never struct{}

func (Never) cond() {}

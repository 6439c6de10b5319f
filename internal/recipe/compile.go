package recipe

import (
	"fmt"
	"strconv"

	"github.com/yacobolo/cssvariant/internal/serialize"
)

// Default import used when a recipe is serialized as a constructor call
// instead of inline source.
const (
	DefaultImportPath = "@vanilla-extract/recipes/createRuntimeFn"
	DefaultImportName = "createRuntimeFn"
)

// Recipe is a compiled recipe: a callable class-name resolver that also
// knows how to reproduce itself in generated code.
type Recipe struct {
	table      Table
	program    *Program
	source     string
	importPath string
	importName string
}

// Option configures Compile.
type Option func(*compileOptions)

type compileOptions struct {
	resolver   StyleResolver
	importPath string
	importName string
}

// WithResolver sets the resolver used for unresolved style objects.
func WithResolver(r StyleResolver) Option {
	return func(o *compileOptions) { o.resolver = r }
}

// WithImport sets the module and export that recreate the recipe at runtime
// when it is serialized as a constructor call.
func WithImport(path, name string) Option {
	return func(o *compileOptions) {
		o.importPath = path
		o.importName = name
	}
}

// Compile resolves every style of spec to a class name and builds the
// recipe function. debugID scopes generated class names; it may be empty.
func Compile(spec Spec, debugID string, opts ...Option) (*Recipe, error) {
	o := compileOptions{
		resolver:   HashResolver{Mode: IdentShort},
		importPath: DefaultImportPath,
		importName: DefaultImportName,
	}
	for _, opt := range opts {
		opt(&o)
	}

	resolve := func(s Style, scope string) (string, error) {
		if s.IsLiteral() {
			return s.ClassName, nil
		}
		if o.resolver == nil {
			return "", fmt.Errorf("resolve %s: no style resolver configured", scope)
		}
		name, err := o.resolver.ResolveStyle(s.Rule, scope)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", scope, err)
		}
		return name, nil
	}
	scoped := func(suffix string) string {
		if debugID != "" {
			return debugID + "_" + suffix
		}
		return suffix
	}

	var t Table
	var err error
	if t.BaseClass, err = resolve(spec.Base, debugID); err != nil {
		return nil, err
	}

	for _, g := range spec.Variants {
		gc := GroupClasses{Group: g.Name, Selections: make([]SelectionClass, 0, len(g.Selections))}
		for _, sel := range g.Selections {
			name, err := resolve(sel.Style, scoped(g.Name+"_"+sel.Key))
			if err != nil {
				return nil, err
			}
			gc.Selections = append(gc.Selections, SelectionClass{Key: sel.Key, ClassName: name})
		}
		t.VariantClasses = append(t.VariantClasses, gc)
	}

	for i, c := range spec.CompoundVariants {
		name, err := resolve(c.Style, scoped("compound_"+strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		t.CompoundClasses = append(t.CompoundClasses, CompoundClass{Match: c.Match, ClassName: name})
	}

	t.DefaultVariants = spec.DefaultVariants

	program := Generate(t)
	return &Recipe{
		table:      t,
		program:    program,
		source:     program.Source(),
		importPath: o.importPath,
		importName: o.importName,
	}, nil
}

// Resolve returns the class string for props.
func (r *Recipe) Resolve(props Props) string {
	return r.program.Resolve(props)
}

// Source returns the generated JavaScript function text.
func (r *Recipe) Source() string {
	return r.source
}

// Table returns the resolved class table the recipe was built from.
func (r *Recipe) Table() Table {
	return r.table
}

// Variants lists the variant group names in declaration order.
func (r *Recipe) Variants() []string {
	names := make([]string, len(r.table.VariantClasses))
	for i, g := range r.table.VariantClasses {
		names[i] = g.Group
	}
	return names
}

// SerializeFunction implements serialize.FunctionValue.
func (r *Recipe) SerializeFunction() serialize.Function {
	return serialize.Function{
		ImportPath: r.importPath,
		ImportName: r.importName,
		Args:       []any{r.runtimeArgs()},
		Source:     r.source,
	}
}

// runtimeArgs is the constructor argument understood by createRuntimeFn.
func (r *Recipe) runtimeArgs() *serialize.Object {
	variants := serialize.NewObject()
	for _, g := range r.table.VariantClasses {
		sel := serialize.NewObject()
		for _, s := range g.Selections {
			sel.Set(s.Key, s.ClassName)
		}
		variants.Set(g.Group, sel)
	}

	defaults := serialize.NewObject()
	for _, d := range r.table.DefaultVariants {
		defaults.Set(d.Group, d.Value.Interface())
	}

	compounds := make([]any, 0, len(r.table.CompoundClasses))
	for _, c := range r.table.CompoundClasses {
		match := serialize.NewObject()
		for _, m := range c.Match {
			match.Set(m.Group, m.Value.Interface())
		}
		compounds = append(compounds, []any{match, c.ClassName})
	}

	args := serialize.NewObject()
	args.Set("defaultClassName", r.table.BaseClass)
	args.Set("variantClassNames", variants)
	args.Set("defaultVariants", defaults)
	args.Set("compoundVariants", compounds)
	return args
}

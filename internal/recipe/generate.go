package recipe

import "strconv"

// Generate builds the program for a resolved recipe table. Generation is
// deterministic: the same table always yields the same program and source.
func Generate(t Table) *Program {
	hasBase := t.BaseClass != ""
	hasVariants := len(t.VariantClasses) > 0
	hasDefaults := hasVariants && len(t.DefaultVariants) > 0
	hasCompounds := hasVariants && len(t.CompoundClasses) > 0

	p := &Program{
		DefaultProps: hasDefaults || hasCompounds,
		Base:         t.BaseClass,
		SpaceAlways:  hasBase,
	}
	if !hasVariants {
		return p
	}

	p.GuardMissing = !hasDefaults && !hasCompounds
	p.SafeDestructure = p.GuardMissing

	vars := make(map[string]string, len(t.VariantClasses))
	for i, g := range t.VariantClasses {
		name := "v" + strconv.Itoa(i)
		vars[g.Group] = name

		b := Binding{Group: g.Group, Var: name}
		if def, ok := t.defaultFor(g.Group); ok {
			b.Default, b.HasDefault = def, true
		}
		p.Bindings = append(p.Bindings, b)
	}

	for _, g := range t.VariantClasses {
		var chain IfChain
		for _, sel := range g.Selections {
			if sel.ClassName == "" {
				continue
			}
			chain.Branches = append(chain.Branches, Branch{
				Cond:  Equals{Var: vars[g.Group], Value: Coerce(sel.Key)},
				Class: sel.ClassName,
			})
		}
		if len(chain.Branches) > 0 {
			p.Body = append(p.Body, chain)
		}
	}

	for _, c := range t.CompoundClasses {
		if c.ClassName == "" {
			continue
		}
		p.Body = append(p.Body, IfChain{Branches: []Branch{{
			Cond:  compoundCond(c.Match, vars),
			Class: c.ClassName,
		}}})
	}

	return p
}

func compoundCond(match []Condition, vars map[string]string) Cond {
	all := make(All, 0, len(match))
	for _, m := range match {
		name, ok := vars[m.Group]
		if !ok {
			return Never{}
		}
		all = append(all, Equals{Var: name, Value: m.Value})
	}
	return all
}

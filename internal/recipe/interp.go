package recipe

import "strings"

// Resolve evaluates the program for props without going through the
// rendered source. It never panics: unknown groups and selections simply
// contribute nothing.
func (p *Program) Resolve(props Props) string {
	var sb strings.Builder
	sb.WriteString(p.Base)

	if len(p.Bindings) == 0 {
		return sb.String()
	}
	if props == nil && p.GuardMissing {
		return sb.String()
	}

	env := make(map[string]Value, len(p.Bindings))
	for _, b := range p.Bindings {
		v := props[b.Group]
		if v.IsUndefined() && b.HasDefault {
			v = b.Default
		}
		env[b.Var] = v
	}

	for _, st := range p.Body {
		chain, ok := st.(IfChain)
		if !ok {
			continue
		}
		for _, br := range chain.Branches {
			if !holds(br.Cond, env) {
				continue
			}
			if p.SpaceAlways || sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(br.Class)
			break
		}
	}

	return sb.String()
}

func holds(c Cond, env map[string]Value) bool {
	switch c := c.(type) {
	case Equals:
		return env[c.Var].StrictEqual(c.Value)
	case All:
		for _, eq := range c {
			if !env[eq.Var].StrictEqual(eq.Value) {
				return false
			}
		}
		return true
	}
	return false
}

package recipe

import (
	"strings"

	"github.com/yacobolo/cssvariant/internal/jsliteral"
)

// Source renders the program as the text of a JavaScript arrow function
// taking props and returning the class string. The text references no
// outer bindings and can be inlined into any module.
func (p *Program) Source() string {
	var sb strings.Builder

	sb.WriteString("(props")
	if p.DefaultProps {
		sb.WriteString(" = {}")
	}
	sb.WriteString(") => {\n")
	sb.WriteString("  let result = " + jsliteral.Quote(p.Base) + ";\n")

	if len(p.Bindings) > 0 {
		if p.GuardMissing {
			sb.WriteString("  if (!props) {\n")
			sb.WriteString("    return result;\n")
			sb.WriteString("  }\n")
		}

		sb.WriteString("  const {")
		for i, b := range p.Bindings {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(jsliteral.Quote(b.Group) + ": " + b.Var)
			if b.HasDefault {
				sb.WriteString(" = " + b.Default.JS())
			}
		}
		sb.WriteString("} = ")
		if p.SafeDestructure {
			sb.WriteString("(props || {})")
		} else {
			sb.WriteString("props")
		}
		sb.WriteString(";\n")

		for _, st := range p.Body {
			p.renderStmt(&sb, st)
		}
	}

	sb.WriteString("  return result;\n")
	sb.WriteString("}\n")
	return sb.String()
}

func (p *Program) renderStmt(sb *strings.Builder, st Stmt) {
	switch s := st.(type) {
	case IfChain:
		for i, br := range s.Branches {
			sb.WriteString("  ")
			if i > 0 {
				sb.WriteString("else ")
			}
			sb.WriteString("if (" + renderCond(br.Cond) + ") {\n")
			sb.WriteString("    result += " + p.renderAppend(br.Class) + ";\n")
			sb.WriteString("  }\n")
		}
	}
}

func (p *Program) renderAppend(class string) string {
	if p.SpaceAlways {
		return jsliteral.Quote(" " + class)
	}
	return `(result ? " " : "") + ` + jsliteral.Quote(class)
}

func renderCond(c Cond) string {
	switch c := c.(type) {
	case Equals:
		return c.Var + " === " + c.Value.JS()
	case All:
		if len(c) == 0 {
			return "true"
		}
		parts := make([]string, len(c))
		for i, eq := range c {
			parts[i] = renderCond(eq)
		}
		return strings.Join(parts, " && ")
	case Never:
		return "false"
	}
	return "false"
}

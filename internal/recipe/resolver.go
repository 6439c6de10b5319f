package recipe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gosimple/slug"

	"github.com/yacobolo/cssvariant/internal/hash"
)

// StyleResolver turns an unresolved style object into a class name. scope
// is the debug identifier the class name should be derived from.
type StyleResolver interface {
	ResolveStyle(rule map[string]any, scope string) (string, error)
}

// StyleResolverFunc adapts a function to StyleResolver.
type StyleResolverFunc func(rule map[string]any, scope string) (string, error)

// ResolveStyle calls f.
func (f StyleResolverFunc) ResolveStyle(rule map[string]any, scope string) (string, error) {
	return f(rule, scope)
}

// IdentMode selects how HashResolver names classes.
type IdentMode string

const (
	// IdentShort produces hash-only class names.
	IdentShort IdentMode = "short"
	// IdentDebug prefixes the hash with the slugified scope.
	IdentDebug IdentMode = "debug"
)

// HashResolver derives deterministic class names from the scope and the
// content of the style object. It does not produce any CSS.
type HashResolver struct {
	Mode IdentMode
	// FileScope is mixed into every hash so equal rules in different files
	// get different class names.
	FileScope string
}

// ResolveStyle implements StyleResolver.
func (r HashResolver) ResolveStyle(rule map[string]any, scope string) (string, error) {
	h := hash.Short(r.FileScope+"\x00"+scope+"\x00"+canonical(rule), 7)
	if r.Mode == IdentDebug && scope != "" {
		name := strings.ReplaceAll(slug.Make(scope), "-", "_")
		if name != "" {
			return name + "__" + h, nil
		}
	}
	return "_" + h, nil
}

// canonical renders rule with sorted keys so the hash does not depend on map
// iteration order.
func canonical(v any) string {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(k + ":" + canonical(x[k]))
		}
		sb.WriteByte('}')
		return sb.String()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = canonical(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return fmt.Sprint(v)
}

// Package serialize writes module exports as JavaScript source.
//
// Plain data (objects, arrays, strings, numbers, booleans, null) is written as
// literals. Function values cannot be serialized structurally; they have to
// implement FunctionValue and are re-emitted either as their own source text
// or as a call to the export that constructs them.
package serialize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yacobolo/cssvariant/internal/hash"
	"github.com/yacobolo/cssvariant/internal/jsliteral"
)

// Function describes how to re-create a function value in generated code.
type Function struct {
	// ImportPath and ImportName name the export that constructs the
	// function; Args are its constructor arguments.
	ImportPath string
	ImportName string
	Args       []any
	// Source is the self-contained function text, used when functions are
	// inlined.
	Source string
}

// FunctionValue is implemented by values that can be serialized as code.
type FunctionValue interface {
	SerializeFunction() Function
}

// Export is a named module export.
type Export struct {
	Name  string
	Value any
}

// Module is the content of a generated module.
type Module struct {
	// Imports are side-effect import statements written first.
	Imports []string
	Exports []Export
}

// Options configures Serialize.
type Options struct {
	// InlineFunctions writes FunctionValue source text instead of a
	// constructor import and call.
	InlineFunctions bool
	// UnusedCompositions are class names stripped from string values.
	UnusedCompositions []string
	// ModuleID seeds the name of the default export binding.
	ModuleID string
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

type serializer struct {
	opts        Options
	unused      *regexp.Regexp
	lookup      map[*Object]string
	imports     []string
	seenImports map[string]bool
	visiting    map[*Object]bool
}

// Serialize renders m as ES module source.
func Serialize(m Module, opts Options) (string, error) {
	s := &serializer{
		opts:        opts,
		lookup:      make(map[*Object]string),
		seenImports: make(map[string]bool),
		visiting:    make(map[*Object]bool),
	}
	if len(opts.UnusedCompositions) > 0 {
		quoted := make([]string, len(opts.UnusedCompositions))
		for i, c := range opts.UnusedCompositions {
			quoted[i] = regexp.QuoteMeta(c)
		}
		s.unused = regexp.MustCompile(`(` + strings.Join(quoted, "|") + `)\s`)
	}

	defaultName := "_" + hash.Short("default\x00"+opts.ModuleID, 6)
	bindingName := func(name string) string {
		if name == "default" {
			return defaultName
		}
		return name
	}

	for _, e := range m.Exports {
		if obj, ok := e.Value.(*Object); ok {
			if _, dup := s.lookup[obj]; !dup {
				s.lookup[obj] = bindingName(e.Name)
			}
		}
	}

	exports := make([]string, 0, len(m.Exports))
	for _, e := range m.Exports {
		if e.Name != "default" && !identifier.MatchString(e.Name) {
			return "", &SerializationError{Export: e.Name, Reason: "export name is not a valid identifier"}
		}
		binding := bindingName(e.Name)
		code, err := s.value(e.Value, binding, e.Name, "")
		if err != nil {
			return "", err
		}
		if e.Name == "default" {
			exports = append(exports, fmt.Sprintf("var %s = %s;\nexport default %s;", binding, code, binding))
			continue
		}
		exports = append(exports, fmt.Sprintf("export var %s = %s;", binding, code))
	}

	out := make([]string, 0, len(m.Imports)+len(s.imports)+len(exports))
	out = append(out, m.Imports...)
	out = append(out, s.imports...)
	out = append(out, exports...)
	return strings.Join(out, "\n"), nil
}

func (s *serializer) value(v any, binding, export, path string) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return jsliteral.Number(float64(x)), nil
	case float64:
		return jsliteral.Number(x), nil
	case string:
		if s.unused != nil {
			x = s.unused.ReplaceAllString(x, "")
		}
		return jsliteral.Quote(x), nil
	case []string:
		items := make([]any, len(x))
		for i, e := range x {
			items[i] = e
		}
		return s.array(items, binding, export, path)
	case []any:
		return s.array(x, binding, export, path)
	case *Object:
		if ref, ok := s.lookup[x]; ok && ref != binding {
			return ref, nil
		}
		if s.visiting[x] {
			return "", &SerializationError{Export: export, Path: path, Reason: "circular reference"}
		}
		s.visiting[x] = true
		defer delete(s.visiting, x)

		parts := make([]string, 0, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			code, err := s.value(val, binding, export, path+"."+k)
			if err != nil {
				return "", err
			}
			parts = append(parts, objectKey(k)+":"+code)
		}
		return "{" + strings.Join(parts, ",") + "}", nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, x[k])
		}
		return s.value(obj, binding, export, path)
	case FunctionValue:
		return s.function(x.SerializeFunction(), binding, export, path)
	}
	return "", &SerializationError{Export: export, Path: path, Reason: fmt.Sprintf("%s (got %T)", invalidExports, v)}
}

func (s *serializer) array(items []any, binding, export, path string) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		code, err := s.value(item, binding, export, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return "", err
		}
		parts[i] = code
	}
	return "[" + strings.Join(parts, ",") + "]", nil
}

func (s *serializer) function(fn Function, binding, export, path string) (string, error) {
	if s.opts.InlineFunctions && fn.Source != "" {
		return strings.TrimSpace(fn.Source), nil
	}
	if fn.ImportPath == "" || fn.ImportName == "" || !identifier.MatchString(fn.ImportName) {
		return "", &SerializationError{Export: export, Path: path, Reason: "invalid function serialization params"}
	}

	local := "_" + hash.Short(fn.ImportName+fn.ImportPath, 5)
	args := make([]string, len(fn.Args))
	for i, arg := range fn.Args {
		code, err := s.value(arg, binding, export, fmt.Sprintf("%s(arg %d)", path, i))
		if err != nil {
			return "", err
		}
		args[i] = code
	}

	stmt := fmt.Sprintf("import { %s as %s } from %s;", fn.ImportName, local, singleQuote(fn.ImportPath))
	if !s.seenImports[stmt] {
		s.seenImports[stmt] = true
		s.imports = append(s.imports, stmt)
	}
	return local + "(" + strings.Join(args, ",") + ")", nil
}

func objectKey(k string) string {
	if identifier.MatchString(k) {
		return k
	}
	return jsliteral.Quote(k)
}

func singleQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s) + "'"
}

package cssvariant

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	"github.com/yacobolo/cssvariant/internal/hash"
	"github.com/yacobolo/cssvariant/internal/inject"
	"github.com/yacobolo/cssvariant/internal/jsliteral"
	"github.com/yacobolo/cssvariant/internal/recipe"
	"github.com/yacobolo/cssvariant/internal/serialize"
	"github.com/yacobolo/cssvariant/internal/stylesheet"
)

// DefaultRuntimeID is the module generated code imports the injection
// runtime from.
const DefaultRuntimeID = "virtual:cssvariant/runtime"

// Mode selects production or development output.
type Mode int

const (
	// ModeProduction minifies CSS and emits marked injection calls that a
	// later Consolidate pass merges.
	ModeProduction Mode = iota
	// ModeDevelopment emits one unmarked injection call per unit that
	// replaces the unit's CSS whenever the module is evaluated again.
	ModeDevelopment
)

// Export is a plain value exported next to the recipes of a unit.
type Export = serialize.Export

// Unit is one compiled style source file.
type Unit struct {
	// Path is the source path relative to the project root. It keys the
	// unit's CSS at runtime and scopes generated class names.
	Path    string
	Recipes []NamedSpec
	// Exports are written after the recipes.
	Exports []Export
	// CSS is the already-resolved stylesheet of the unit.
	CSS string
	// Imports are module specifiers of units whose CSS this one depends on.
	Imports []string
	// UnusedCompositions are class names stripped from exported strings.
	UnusedCompositions []string
}

// ModuleOptions configures BuildModule.
type ModuleOptions struct {
	Mode      Mode
	RuntimeID string
	Protocol  Protocol
	// SkipCSS omits the injection call, as for server-side builds.
	SkipCSS bool
	// InlineFunctions writes recipe functions as source instead of runtime
	// constructor calls.
	InlineFunctions bool
	// Resolver resolves style objects. The default hashes them, with
	// readable prefixes in development.
	Resolver StyleResolver
	Logger   *zap.Logger
}

// Module is a generated JavaScript module.
type Module struct {
	Code string
	// CSS is the stylesheet as embedded in the injection call.
	CSS string
	// FileKey identifies the unit's CSS at runtime.
	FileKey string
	Recipes []*Recipe
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// BuildModule compiles the recipes of unit and writes the module that
// exports them and injects the unit's CSS.
func BuildModule(unit Unit, opts ModuleOptions) (*Module, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.RuntimeID == "" {
		opts.RuntimeID = DefaultRuntimeID
	}

	relPath := filepath.ToSlash(unit.Path)
	mod := &Module{FileKey: hash.String(relPath)}

	resolver := opts.Resolver
	if resolver == nil {
		mode := recipe.IdentShort
		if opts.Mode == ModeDevelopment {
			mode = recipe.IdentDebug
		}
		resolver = recipe.HashResolver{Mode: mode, FileScope: relPath}
	}

	exports := make([]Export, 0, len(unit.Recipes)+len(unit.Exports))
	seen := make(map[string]string, len(unit.Recipes))
	for _, ns := range unit.Recipes {
		name := exportName(ns.Name)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("recipes %q and %q both export %s", prev, ns.Name, name)
		}
		seen[name] = ns.Name

		r, err := recipe.Compile(ns.Spec, ns.Name, recipe.WithResolver(resolver))
		if err != nil {
			return nil, fmt.Errorf("compile recipe %q: %w", ns.Name, err)
		}
		mod.Recipes = append(mod.Recipes, r)
		exports = append(exports, Export{Name: name, Value: r})
	}
	exports = append(exports, unit.Exports...)

	imports := make([]string, 0, len(unit.Imports))
	for _, spec := range unit.Imports {
		imports = append(imports, "import "+jsliteral.Quote(spec)+";")
	}

	js, err := serialize.Serialize(serialize.Module{Imports: imports, Exports: exports}, serialize.Options{
		InlineFunctions:    opts.InlineFunctions,
		UnusedCompositions: unit.UnusedCompositions,
		ModuleID:           relPath,
	})
	if err != nil {
		return nil, err
	}

	css := unit.CSS
	if opts.Mode == ModeProduction {
		css = stylesheet.Minify(css)
	}
	if opts.SkipCSS || strings.TrimSpace(css) == "" {
		mod.Code = js
		log.Debug("built module without css", zap.String("unit", relPath), zap.Int("recipes", len(mod.Recipes)))
		return mod, nil
	}
	mod.CSS = css

	ns := "_" + hash.Short("runtime\x00"+mod.FileKey, 6)
	callee := ns + "." + inject.RuntimeExport

	var call string
	if opts.Mode == ModeProduction {
		call = opts.Protocol.Wrap(callee, mod.FileKey, css)
	} else {
		call = inject.DevCall(callee, mod.FileKey, css, relPath)
	}

	var sb strings.Builder
	sb.WriteString("import * as " + ns + " from " + jsliteral.Quote(opts.RuntimeID) + ";\n")
	if js != "" {
		sb.WriteString(js + "\n")
	}
	sb.WriteString(call + "\n")
	mod.Code = sb.String()

	log.Debug("built module",
		zap.String("unit", relPath),
		zap.String("key", mod.FileKey),
		zap.Int("recipes", len(mod.Recipes)),
		zap.Int("css_bytes", len(css)))

	return mod, nil
}

// exportName turns a recipe name into an export identifier.
func exportName(name string) string {
	if name == "default" || identifier.MatchString(name) {
		return name
	}
	return strcase.ToLowerCamel(name)
}

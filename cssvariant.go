// Package cssvariant compiles variant recipes into portable class-name
// resolvers and consolidates CSS injection calls in bundled JavaScript.
//
// # Recipes
//
// A recipe declares a base style, variant groups, compound rules and
// default selections. Compiling it yields a resolver that can be called
// in-process and re-emitted as self-contained JavaScript source:
//
//	r, err := cssvariant.CompileRecipe(spec, "button")
//	r.Resolve(cssvariant.Props{"size": cssvariant.String("lg")})
//	r.Source() // "(props = {}) => { ... }"
//
// # Injection consolidation
//
// Compiled units deliver their CSS through marked injection calls. After
// bundling, Consolidate merges every marked call of a chunk into one:
//
//	res, err := cssvariant.Consolidate(code, cssvariant.ConsolidateOptions{})
//
// ConsolidateFiles runs the same pass over files on disk.
//
// # CLI Tool
//
// Install the command line tool with:
//
//	go install github.com/yacobolo/cssvariant/cmd/cssvariant@latest
package cssvariant

import (
	"github.com/yacobolo/cssvariant/internal/inject"
	"github.com/yacobolo/cssvariant/internal/recipe"
)

// Recipe types.
type (
	Recipe          = recipe.Recipe
	Spec            = recipe.Spec
	NamedSpec       = recipe.NamedSpec
	Style           = recipe.Style
	VariantGroup    = recipe.VariantGroup
	Selection       = recipe.Selection
	CompoundVariant = recipe.CompoundVariant
	Condition       = recipe.Condition
	Value           = recipe.Value
	Props           = recipe.Props
	StyleResolver   = recipe.StyleResolver
	RecipeOption    = recipe.Option
)

// Consolidation types.
type (
	ConsolidateOptions   = inject.Options
	ConsolidateResult    = inject.Result
	Marker               = inject.Marker
	Protocol             = inject.Protocol
	Delivery             = inject.Delivery
	Anchor               = inject.Anchor
	MalformedMarkerError = inject.MalformedMarkerError
	MarkerDecodeError    = inject.MarkerDecodeError
)

// Delivery and anchor choices.
const (
	DeliveryConcat = inject.DeliveryConcat
	DeliveryMap    = inject.DeliveryMap
	AnchorFirst    = inject.AnchorFirst
	AnchorLast     = inject.AnchorLast
)

// Value constructors.
var (
	Undefined = recipe.Undefined
	Null      = recipe.Null
	Bool      = recipe.Bool
	Number    = recipe.Number
	String    = recipe.String
	Class     = recipe.Class
	Rule      = recipe.Rule
)

// CompileRecipe compiles spec into a recipe. debugID scopes the class
// names produced for unresolved styles.
func CompileRecipe(spec Spec, debugID string, opts ...RecipeOption) (*Recipe, error) {
	return recipe.Compile(spec, debugID, opts...)
}

// Consolidate merges the marked injection calls in code into one call.
// Code without markers is returned unchanged.
func Consolidate(code string, opts ConsolidateOptions) (*ConsolidateResult, error) {
	return inject.Consolidate(code, opts)
}

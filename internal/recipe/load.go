package recipe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a recipe file: named recipes plus the already-resolved CSS
// of the unit they belong to.
type Document struct {
	Recipes []NamedSpec
	CSS     string
}

// LoadFile reads a YAML or JSON recipe document from path.
func LoadFile(path string) (*Document, error) {
	// #nosec G304 - path comes from the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recipe file: %w", err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load decodes a recipe document. Mapping order in the input is kept.
func Load(r io.Reader) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("parse recipe document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return &Document{}, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, nodeError(top, "expected a mapping at document root")
	}

	doc := &Document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "recipes":
			if val.Kind != yaml.MappingNode {
				return nil, nodeError(val, "recipes must be a mapping")
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				spec, err := decodeSpec(val.Content[j+1])
				if err != nil {
					return nil, fmt.Errorf("recipe %q: %w", val.Content[j].Value, err)
				}
				doc.Recipes = append(doc.Recipes, NamedSpec{Name: val.Content[j].Value, Spec: spec})
			}
		case "css":
			if val.Kind != yaml.ScalarNode {
				return nil, nodeError(val, "css must be a string")
			}
			doc.CSS = val.Value
		default:
			return nil, nodeError(key, fmt.Sprintf("unknown key %q", key.Value))
		}
	}
	return doc, nil
}

func decodeSpec(n *yaml.Node) (Spec, error) {
	var spec Spec
	if n.Kind != yaml.MappingNode {
		return spec, nodeError(n, "recipe must be a mapping")
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		var err error
		switch key.Value {
		case "base":
			spec.Base, err = decodeStyle(val)
		case "variants":
			spec.Variants, err = decodeVariants(val)
		case "compoundVariants":
			spec.CompoundVariants, err = decodeCompounds(val)
		case "defaultVariants":
			spec.DefaultVariants, err = decodeConditions(val)
		default:
			err = nodeError(key, fmt.Sprintf("unknown recipe key %q", key.Value))
		}
		if err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func decodeStyle(n *yaml.Node) (Style, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return Class(""), nil
		}
		return Class(n.Value), nil
	case yaml.MappingNode:
		var rule map[string]any
		if err := n.Decode(&rule); err != nil {
			return Style{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Rule(rule), nil
	}
	return Style{}, nodeError(n, "style must be a class name or a style object")
}

func decodeVariants(n *yaml.Node) ([]VariantGroup, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nodeError(n, "variants must be a mapping")
	}
	groups := make([]VariantGroup, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, sels := n.Content[i], n.Content[i+1]
		if sels.Kind != yaml.MappingNode {
			return nil, nodeError(sels, fmt.Sprintf("variant group %q must be a mapping", name.Value))
		}
		g := VariantGroup{Name: name.Value}
		for j := 0; j+1 < len(sels.Content); j += 2 {
			style, err := decodeStyle(sels.Content[j+1])
			if err != nil {
				return nil, err
			}
			g.Selections = append(g.Selections, Selection{Key: sels.Content[j].Value, Style: style})
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func decodeCompounds(n *yaml.Node) ([]CompoundVariant, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, nodeError(n, "compoundVariants must be a sequence")
	}
	out := make([]CompoundVariant, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode {
			return nil, nodeError(item, "compound variant must be a mapping")
		}
		var cv CompoundVariant
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, val := item.Content[i], item.Content[i+1]
			var err error
			switch key.Value {
			case "variants":
				cv.Match, err = decodeConditions(val)
			case "style":
				cv.Style, err = decodeStyle(val)
			default:
				err = nodeError(key, fmt.Sprintf("unknown compound variant key %q", key.Value))
			}
			if err != nil {
				return nil, err
			}
		}
		out = append(out, cv)
	}
	return out, nil
}

func decodeConditions(n *yaml.Node) ([]Condition, error) {
	if n.Kind != yaml.MappingNode {
		return nil, nodeError(n, "expected a mapping of variant selections")
	}
	conds := make([]Condition, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, nodeError(val, fmt.Sprintf("selection for %q must be a scalar", key.Value))
		}
		var raw any
		if err := val.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", val.Line, err)
		}
		v, err := ValueOf(raw)
		if err != nil {
			return nil, nodeError(val, err.Error())
		}
		conds = append(conds, Condition{Group: key.Value, Value: v})
	}
	return conds, nil
}

func nodeError(n *yaml.Node, msg string) error {
	return fmt.Errorf("line %d, column %d: %s", n.Line, n.Column, msg)
}

package schema

import (
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/jsondoc/go-jsondoc/ir"
)

// Parse parses a schema from an ir node.
func Parse(node *ir.Node) (*Node, error) {
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("schema must be an object, got %s", node.Type)
	}

	n := &Node{}

	if typeNode := ir.Get(node, "type"); typeNode != nil {
		tags, err := parseTypes(typeNode)
		if err != nil {
			return nil, err
		}
		n.DeclaredTypes = tags
	}

	if defNode := ir.Get(node, "default"); defNode != nil {
		n.Default = defNode.Clone()
	}

	if optNode := ir.Get(node, "optional"); optNode != nil {
		if optNode.Type != ir.BoolType {
			return nil, fmt.Errorf("optional must be a boolean, got %s", optNode.Type)
		}
		n.Optional = optNode.Bool
	}

	if propsNode := ir.Get(node, "properties"); propsNode != nil {
		if propsNode.Type != ir.ObjectType {
			return nil, fmt.Errorf("properties must be an object, got %s", propsNode.Type)
		}
		n.Properties = make(map[string]*Node, len(propsNode.Fields))
		for i, name := range propsNode.Fields {
			child, err := Parse(propsNode.Values[i])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property %q: %w", name, err)
			}
			n.Properties[name] = child
		}
	}

	if itemsNode := ir.Get(node, "items"); itemsNode != nil {
		switch itemsNode.Type {
		case ir.ObjectType:
			child, err := Parse(itemsNode)
			if err != nil {
				return nil, fmt.Errorf("failed to parse items: %w", err)
			}
			n.Items = child
		case ir.ArrayType:
			n.TupleItems = make([]*Node, 0, len(itemsNode.Values))
			for i, eltNode := range itemsNode.Values {
				child, err := Parse(eltNode)
				if err != nil {
					return nil, fmt.Errorf("failed to parse items[%d]: %w", i, err)
				}
				n.TupleItems = append(n.TupleItems, child)
			}
		default:
			return nil, fmt.Errorf("items must be an object or array, got %s", itemsNode.Type)
		}
	}

	var err error
	n.AdditionalItems, n.ClosedItems, err = parseAdditional(node, "additionalItems")
	if err != nil {
		return nil, err
	}
	n.AdditionalProperties, n.ClosedProperties, err = parseAdditional(node, "additionalProperties")
	if err != nil {
		return nil, err
	}

	if clsNode := ir.Get(node, "__fragment_cls"); clsNode != nil {
		if clsNode.Type != ir.StringType {
			return nil, fmt.Errorf("__fragment_cls must be a string, got %s", clsNode.Type)
		}
		n.FragmentClass = clsNode.String
	}

	if checkNode := ir.Get(node, "check"); checkNode != nil {
		if checkNode.Type != ir.StringType {
			return nil, fmt.Errorf("check must be a string, got %s", checkNode.Type)
		}
		n.Check = checkNode.String
	}

	if titleNode := ir.Get(node, "title"); titleNode != nil {
		if titleNode.Type != ir.StringType {
			return nil, fmt.Errorf("title must be a string, got %s", titleNode.Type)
		}
		n.Title = titleNode.String
	}

	if descNode := ir.Get(node, "description"); descNode != nil {
		if descNode.Type != ir.StringType {
			return nil, fmt.Errorf("description must be a string, got %s", descNode.Type)
		}
		n.Description = descNode.String
	}

	return n, nil
}

// parseTypes normalizes a single tag or a list of tags.
func parseTypes(node *ir.Node) ([]TypeTag, error) {
	switch node.Type {
	case ir.StringType:
		tag, err := parseTypeTag(node.String)
		if err != nil {
			return nil, err
		}
		return []TypeTag{tag}, nil
	case ir.ArrayType:
		tags := make([]TypeTag, 0, len(node.Values))
		for _, eltNode := range node.Values {
			if eltNode.Type != ir.StringType {
				return nil, fmt.Errorf("type entries must be strings, got %s", eltNode.Type)
			}
			tag, err := parseTypeTag(eltNode.String)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("type must be a string or array, got %s", node.Type)
	}
}

func parseTypeTag(s string) (TypeTag, error) {
	tag := TypeTag(s)
	if !slices.Contains(TypeTags(), tag) {
		return "", fmt.Errorf("unrecognized type %q", s)
	}
	return tag, nil
}

// parseAdditional parses an additionalProperties/additionalItems clause,
// which may be a nested schema or the literal false.
func parseAdditional(node *ir.Node, field string) (*Node, bool, error) {
	addNode := ir.Get(node, field)
	if addNode == nil {
		return nil, false, nil
	}
	switch addNode.Type {
	case ir.BoolType:
		if addNode.Bool {
			return Any(), false, nil
		}
		return nil, true, nil
	case ir.ObjectType:
		child, err := Parse(addNode)
		if err != nil {
			return nil, false, fmt.Errorf("failed to parse %s: %w", field, err)
		}
		return child, false, nil
	default:
		return nil, false, fmt.Errorf("%s must be an object or false, got %s", field, addNode.Type)
	}
}

// ParseJSON parses a schema from JSON text.
func ParseJSON(d []byte) (*Node, error) {
	node, err := ir.FromJSON(d)
	if err != nil {
		return nil, err
	}
	return Parse(node)
}

// ParseYAML parses a schema from YAML text.
func ParseYAML(d []byte) (*Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	node, err := ir.FromAny(v)
	if err != nil {
		return nil, err
	}
	return Parse(node)
}

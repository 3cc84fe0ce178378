package raw

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"desergen/internal/modpath"
)

// DecodeType decodes a member type from either a type expression scalar
// or a single-key tagged mapping.
func DecodeType(node *yaml.Node) (MemberType, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		t, err := ParseType(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return t, nil

	case yaml.MappingNode:
		return decodeTaggedType(node)

	default:
		return nil, fmt.Errorf("line %d: expected type expression or tagged mapping, got %s",
			node.Line, nodeKindName(node.Kind))
	}
}

// decodeTaggedType decodes forms like {Arr: Num} or {Map: [Str, Num]}.
func decodeTaggedType(node *yaml.Node) (MemberType, error) {
	if len(node.Content) != 2 {
		return nil, fmt.Errorf("line %d: tagged type must have exactly one key", node.Line)
	}

	tag, body := node.Content[0].Value, node.Content[1]

	switch tag {
	case "Arr":
		elem, err := DecodeType(body)
		if err != nil {
			return nil, err
		}

		return Arr{Elem: elem}, nil

	case "Opt":
		inner, err := DecodeType(body)
		if err != nil {
			return nil, err
		}

		return Opt{Inner: inner}, nil

	case "Map":
		if body.Kind != yaml.SequenceNode || len(body.Content) != 2 {
			return nil, fmt.Errorf("line %d: Map expects a [key, value] pair", body.Line)
		}

		key, err := DecodeType(body.Content[0])
		if err != nil {
			return nil, err
		}

		value, err := DecodeType(body.Content[1])
		if err != nil {
			return nil, err
		}

		return Map{Key: key, Value: value}, nil

	case "DefClass", "DefEnum":
		var path modpath.Path
		if err := body.Decode(&path); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", body.Line, tag, err)
		}

		if tag == "DefClass" {
			return DefClass{Path: path}, nil
		}

		return DefEnum{Path: path}, nil

	case "Num", "Str", "Bool":
		return nil, fmt.Errorf("line %d: %s takes no argument; write it as a plain scalar", node.Line, tag)

	default:
		return nil, fmt.Errorf("line %d: unknown type %q", node.Line, tag)
	}
}

// decodeSchema decodes the `schema:` node: a mapping with exactly one of
// `class` or `enum`.
func decodeSchema(node *yaml.Node) (Schema, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: schema must be a mapping with a `class` or `enum` key", node.Line)
	}

	if len(node.Content) != 2 {
		return nil, fmt.Errorf("line %d: schema must declare exactly one of `class` or `enum`", node.Line)
	}

	key, body := node.Content[0], node.Content[1]

	switch strings.ToLower(key.Value) {
	case "class":
		return decodeClass(body)
	case "enum":
		return decodeEnum(body)
	default:
		return nil, fmt.Errorf("line %d: unknown schema kind %q (expected class or enum)", key.Line, key.Value)
	}
}

func decodeClass(node *yaml.Node) (*Class, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: class must be a mapping of field name to type", node.Line)
	}

	class := &Class{Fields: make([]Field, 0, len(node.Content)/2)}
	seen := make(map[string]struct{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		nameNode, typeNode := node.Content[i], node.Content[i+1]

		name := nameNode.Value
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("line %d: blank field name", nameNode.Line)
		}

		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("line %d: duplicate field %q", nameNode.Line, name)
		}

		seen[name] = struct{}{}

		t, err := DecodeType(typeNode)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}

		class.Fields = append(class.Fields, Field{Name: name, Type: t})
	}

	return class, nil
}

func decodeEnum(node *yaml.Node) (*Enum, error) {
	var variants []string
	if err := node.Decode(&variants); err != nil {
		return nil, fmt.Errorf("line %d: enum must be a sequence of variant names: %w", node.Line, err)
	}

	if len(variants) == 0 {
		return nil, fmt.Errorf("line %d: enum must declare at least one variant", node.Line)
	}

	seen := make(map[string]struct{}, len(variants))

	for _, v := range variants {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("line %d: blank enum variant", node.Line)
		}

		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("line %d: duplicate enum variant %q", node.Line, v)
		}

		seen[v] = struct{}{}
	}

	return &Enum{Variants: variants}, nil
}

func nodeKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

var errMissingSchema = errors.New("document has no `schema` section")

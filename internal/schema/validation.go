package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValidationInfo is the deserialization metadata attached to a schema.
// It is carried through resolution unchanged; only the enum default is
// checked against the schema body.
type ValidationInfo struct {
	// Required lists class fields that must be present in input.
	Required []string `yaml:"required,omitempty"`
	// AllowUndefined lists class fields that may be absent in input.
	AllowUndefined []string `yaml:"allow_undefined,omitempty"`
	// Aliases maps a field (or enum variant) to alternative input names.
	Aliases map[string][]string `yaml:"aliases,omitempty"`
	// Defaults holds per-field defaults for classes or the default variant
	// for enums.
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// IsRequired reports whether field is listed as required.
func (v *ValidationInfo) IsRequired(field string) bool {
	if v == nil {
		return false
	}

	for _, r := range v.Required {
		if r == field {
			return true
		}
	}

	return false
}

// AllowsUndefined reports whether field is listed in allow_undefined.
func (v *ValidationInfo) AllowsUndefined(field string) bool {
	if v == nil {
		return false
	}

	for _, a := range v.AllowUndefined {
		if a == field {
			return true
		}
	}

	return false
}

// AliasesOf returns the aliases declared for name.
func (v *ValidationInfo) AliasesOf(name string) []string {
	if v == nil {
		return nil
	}

	return v.Aliases[name]
}

// Defaults is either a field → value mapping (classes) or a single variant
// name (enums). YAML accepts a mapping or a scalar respectively.
type Defaults struct {
	Fields  map[string]string
	Variant string
}

// IsZero reports whether no defaults were declared.
func (d Defaults) IsZero() bool {
	return len(d.Fields) == 0 && d.Variant == ""
}

// IsVariant reports whether the defaults were declared as a scalar.
func (d Defaults) IsVariant() bool {
	return d.Variant != ""
}

// UnmarshalYAML implements custom YAML unmarshaling for Defaults.
// Accepts either a scalar (enum default) or a mapping (class defaults).
func (d *Defaults) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var variant string
		if err := node.Decode(&variant); err != nil {
			return err
		}

		*d = Defaults{Variant: variant}

		return nil

	case yaml.MappingNode:
		var fields map[string]string
		if err := node.Decode(&fields); err != nil {
			return fmt.Errorf("invalid class defaults: %w", err)
		}

		*d = Defaults{Fields: fields}

		return nil

	default:
		return fmt.Errorf("line %d: defaults must be a variant name or a field mapping", node.Line)
	}
}

// MarshalYAML implements custom YAML marshaling for Defaults.
func (d Defaults) MarshalYAML() (any, error) {
	if d.IsVariant() {
		return d.Variant, nil
	}

	return d.Fields, nil
}

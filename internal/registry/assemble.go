package registry

import (
	"desergen/internal/modpath"
	"desergen/internal/schema"
	"desergen/internal/schema/raw"
)

// Namer converts a path segment into a canonical type name.
type Namer func(segment string) string

// Assemble resolves doc, loaded for the requested path, into the Info
// stored under id.
//
// Overrides in doc win; otherwise file_name is the last path component,
// name is that component passed through namer, and mod_path is the
// requested path.
func Assemble(id schema.ID, requested modpath.Path, doc *raw.Document, lookup Lookup, namer Namer) (*schema.Info, error) {
	body, err := ResolveSchema(doc.Schema, lookup)
	if err != nil {
		return nil, err
	}

	if err := applyDefaults(body, doc.Validation); err != nil {
		return nil, err
	}

	info := &schema.Info{
		ID:          id,
		Name:        doc.Name,
		FileName:    doc.FileName,
		ModPath:     requested,
		Schema:      body,
		Validation:  doc.Validation,
		Source:      doc.Source,
		LastUpdated: doc.LastUpdated,
	}

	if info.FileName == "" {
		info.FileName = requested.Last()
	}

	if info.Name == "" {
		info.Name = namer(requested.Last())
	}

	if doc.ModPath != nil {
		info.ModPath = *doc.ModPath
	}

	return info, nil
}

// applyDefaults checks the declared defaults against the schema kind and
// selects the enum default variant.
func applyDefaults(body schema.Schema, validation *schema.ValidationInfo) error {
	var defaults schema.Defaults
	if validation != nil {
		defaults = validation.Defaults
	}

	switch s := body.(type) {
	case *schema.Enum:
		if len(defaults.Fields) > 0 {
			return &schema.DefaultsShapeError{Schema: "enum"}
		}

		if len(s.Variants) == 0 {
			return &schema.EmptyEnumError{}
		}

		if defaults.Variant == "" {
			s.Default = s.Variants[0]
			return nil
		}

		if !s.Has(defaults.Variant) {
			return &schema.EnumDefaultError{Default: defaults.Variant, Variants: s.Variants}
		}

		s.Default = defaults.Variant

	case *schema.Class:
		if defaults.IsVariant() {
			return &schema.DefaultsShapeError{Schema: "class"}
		}
	}

	return nil
}

package registry

import (
	"fmt"
	"slices"

	"desergen/internal/match"
	"desergen/internal/modpath"
	"desergen/internal/schema"
	"desergen/internal/schema/raw"
)

// Resolve replaces every module path reference in t with its identifier
// and narrows map keys and optional inner types into their restricted
// subsets.
func Resolve(t raw.MemberType, lookup Lookup) (schema.MemberType, error) {
	switch v := t.(type) {
	case raw.Num:
		return schema.Num{}, nil
	case raw.Str:
		return schema.Str{}, nil
	case raw.Bool:
		return schema.Bool{}, nil

	case raw.Arr:
		elem, err := Resolve(v.Elem, lookup)
		if err != nil {
			return nil, err
		}

		return schema.Arr{Elem: elem}, nil

	case raw.Map:
		resolvedKey, err := Resolve(v.Key, lookup)
		if err != nil {
			return nil, err
		}

		key, err := schema.AsMapKey(resolvedKey)
		if err != nil {
			return nil, err
		}

		value, err := Resolve(v.Value, lookup)
		if err != nil {
			return nil, err
		}

		return schema.Map{Key: key, Value: value}, nil

	case raw.Opt:
		resolvedInner, err := Resolve(v.Inner, lookup)
		if err != nil {
			return nil, err
		}

		inner, err := schema.AsOptional(resolvedInner)
		if err != nil {
			return nil, err
		}

		return schema.Opt{Inner: inner}, nil

	case raw.DefClass:
		id, err := lookupPath(v.Path, lookup)
		if err != nil {
			return nil, err
		}

		return schema.DefClass{ID: id}, nil

	case raw.DefEnum:
		id, err := lookupPath(v.Path, lookup)
		if err != nil {
			return nil, err
		}

		return schema.DefEnum{ID: id}, nil

	default:
		return nil, fmt.Errorf("unsupported member type %T", t)
	}
}

// ResolveSchema resolves a schema body. Class fields are resolved in
// declaration order and the first failure is returned as a FieldError.
// Enums are carried through unchanged apart from the emptiness check.
func ResolveSchema(s raw.Schema, lookup Lookup) (schema.Schema, error) {
	switch v := s.(type) {
	case *raw.Class:
		fields := make([]schema.Field, 0, len(v.Fields))

		for _, f := range v.Fields {
			t, err := Resolve(f.Type, lookup)
			if err != nil {
				return nil, &schema.FieldError{Field: f.Name, Err: err}
			}

			fields = append(fields, schema.Field{Name: f.Name, Type: t})
		}

		return &schema.Class{Fields: fields}, nil

	case *raw.Enum:
		if len(v.Variants) == 0 {
			return nil, &schema.EmptyEnumError{}
		}

		return &schema.Enum{Variants: slices.Clone(v.Variants)}, nil

	default:
		return nil, fmt.Errorf("unsupported schema %T", s)
	}
}

func lookupPath(p modpath.Path, lookup Lookup) (schema.ID, error) {
	if id, ok := lookup[p]; ok {
		return id, nil
	}

	refErr := &schema.UnresolvedReferenceError{Path: p}
	if s, ok := match.Suggest(p.String(), lookup.pathStrings()); ok {
		refErr.Suggestion = modpath.MustParse(s)
	}

	return schema.ID{}, refErr
}

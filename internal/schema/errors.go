package schema

import (
	"fmt"
	"strings"

	"desergen/internal/modpath"
)

// InvalidMapKeyError reports a map key that resolved outside {Num, Str, DefEnum}.
type InvalidMapKeyError struct {
	Type MemberType
}

func (e *InvalidMapKeyError) Error() string {
	return fmt.Sprintf("invalid map key type %s: expected Num, Str or DefEnum", typeString(e.Type))
}

// InvalidOptionalError reports an Opt whose inner type is itself optional.
type InvalidOptionalError struct {
	Type MemberType
}

func (e *InvalidOptionalError) Error() string {
	return fmt.Sprintf("invalid optional type %s: expected Num, Str, Bool, Arr, Map, DefClass or DefEnum",
		typeString(e.Type))
}

// UnresolvedReferenceError reports a DefClass/DefEnum whose module path is
// not among the requested schemas.
type UnresolvedReferenceError struct {
	Path modpath.Path
	// Suggestion is the closest requested path, or the zero path.
	Suggestion modpath.Path
}

func (e *UnresolvedReferenceError) Error() string {
	msg := fmt.Sprintf("unresolved reference to %q: schema is not in the requested set", e.Path)
	if !e.Suggestion.IsZero() {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}

	return msg
}

// UnknownIdentifierError reports a registry lookup for an ID it does not
// hold. Given the two-phase build this indicates an internal bug.
type UnknownIdentifierError struct {
	ID ID
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown schema identifier %s (internal invariant violated)", e.ID)
}

// FieldError attributes a resolution failure to a class field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// EmptyEnumError reports an enum without variants, for which no default can
// be selected.
type EmptyEnumError struct{}

func (*EmptyEnumError) Error() string {
	return "enum declares no variants"
}

// EnumDefaultError reports a declared enum default that is not a variant.
type EnumDefaultError struct {
	Default  string
	Variants []string
}

func (e *EnumDefaultError) Error() string {
	return fmt.Sprintf("default %q is not one of the enum variants [%s]",
		e.Default, strings.Join(e.Variants, ", "))
}

// DefaultsShapeError reports defaults declared in the wrong form for the
// schema kind (a scalar for a class, a mapping for an enum).
type DefaultsShapeError struct {
	Schema string
}

func (e *DefaultsShapeError) Error() string {
	if e.Schema == "enum" {
		return "enum defaults must be a single variant name, not a mapping"
	}

	return e.Schema + " defaults must be a field mapping, not a scalar"
}

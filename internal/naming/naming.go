package naming

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// TypeName converts a path segment into the canonical type-name form:
// "userProfile", "user_profile" and "user-profile" all become "UserProfile".
func TypeName(segment string) string {
	return strcase.ToCamel(segment)
}

// ConstName converts a type name into an upper snake constant prefix:
// "UserProfile" becomes "USER_PROFILE".
func ConstName(name string) string {
	return strcase.ToScreamingSnake(name)
}

// FuncName joins a lower-case verb and a type name: ("parse", "Role")
// becomes "parseRole".
func FuncName(verb, typeName string) string {
	return strcase.ToLowerCamel(verb) + TypeName(typeName)
}

// PropertyName returns name as it must appear in a property declaration:
// bare when it is a valid identifier, otherwise as a quoted string.
func PropertyName(name string) string {
	if IsIdentifier(name) {
		return name
	}

	return strconv.Quote(name)
}

// PropertyAccess returns the expression that reads name from obj.
func PropertyAccess(obj, name string) string {
	if IsIdentifier(name) {
		return obj + "." + name
	}

	return obj + "[" + strconv.Quote(name) + "]"
}

// EnumMember returns a valid enum member name for variant. Variants that
// are already identifiers are kept verbatim; others are camel-cased, and
// prefixed with '_' when the result still starts with a digit.
func EnumMember(variant string) string {
	if IsIdentifier(variant) && !IsReserved(variant) {
		return variant
	}

	member := strcase.ToCamel(variant)
	if member == "" || !IsIdentifier(member) || IsReserved(member) {
		member = "_" + strings.Map(identRune, member)
	}

	return member
}

// IsIdentifier reports whether s is a valid identifier: a letter, '_' or
// '$' followed by letters, digits, '_' or '$'.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' && r != '$' {
				return false
			}
		} else {
			if !isLetter(r) && !isDigit(r) && r != '_' && r != '$' {
				return false
			}
		}
	}

	return true
}

// IsReserved reports whether s is a reserved word that cannot name a
// declaration.
func IsReserved(s string) bool {
	_, ok := reserved[s]
	return ok
}

func identRune(r rune) rune {
	if isLetter(r) || isDigit(r) || r == '_' || r == '$' {
		return r
	}

	return '_'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

var reserved = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"export": {}, "extends": {}, "false": {}, "finally": {}, "for": {}, "function": {},
	"if": {}, "import": {}, "in": {}, "instanceof": {}, "new": {}, "null": {},
	"return": {}, "super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "var": {}, "void": {}, "while": {}, "with": {},
}

package raw

import (
	"fmt"

	"desergen/internal/modpath"
	"desergen/internal/schema"
)

// MemberType is an unresolved class-field type.
type MemberType interface {
	Kind() schema.Kind
	String() string

	rawMember()
}

type (
	// Num is a numeric value.
	Num struct{}
	// Str is a string value.
	Str struct{}
	// Bool is a boolean value.
	Bool struct{}

	// Arr is an array of Elem.
	Arr struct {
		Elem MemberType
	}

	// Map maps Key to Value. Key is checked during resolution.
	Map struct {
		Key   MemberType
		Value MemberType
	}

	// Opt is an optional Inner. Inner is checked during resolution.
	Opt struct {
		Inner MemberType
	}

	// DefClass references a class schema by module path.
	DefClass struct {
		Path modpath.Path
	}

	// DefEnum references an enum schema by module path.
	DefEnum struct {
		Path modpath.Path
	}
)

func (Num) Kind() schema.Kind { return schema.KindNum }
func (Str) Kind() schema.Kind { return schema.KindStr }
func (Bool) Kind() schema.Kind { return schema.KindBool }
func (Arr) Kind() schema.Kind { return schema.KindArr }
func (Map) Kind() schema.Kind { return schema.KindMap }
func (Opt) Kind() schema.Kind { return schema.KindOpt }
func (DefClass) Kind() schema.Kind { return schema.KindDefClass }
func (DefEnum) Kind() schema.Kind { return schema.KindDefEnum }

func (Num) String() string { return "Num" }
func (Str) String() string { return "Str" }
func (Bool) String() string { return "Bool" }

func (t Arr) String() string {
	return fmt.Sprintf("Arr(%s)", typeString(t.Elem))
}

func (t Map) String() string {
	return fmt.Sprintf("Map(%s, %s)", typeString(t.Key), typeString(t.Value))
}

func (t Opt) String() string {
	return fmt.Sprintf("Opt(%s)", typeString(t.Inner))
}

func (t DefClass) String() string {
	return fmt.Sprintf("DefClass(%s)", t.Path)
}

func (t DefEnum) String() string {
	return fmt.Sprintf("DefEnum(%s)", t.Path)
}

func (Num) rawMember() {}
func (Str) rawMember() {}
func (Bool) rawMember() {}
func (Arr) rawMember() {}
func (Map) rawMember() {}
func (Opt) rawMember() {}
func (DefClass) rawMember() {}
func (DefEnum) rawMember() {}

func typeString(t MemberType) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

// Schema is an unresolved schema body: *Class or *Enum.
type Schema interface {
	isRawSchema()
}

// Field is a class member in declaration order.
type Field struct {
	Name string
	Type MemberType
}

// Class is an unresolved class schema. Field names are unique.
type Class struct {
	Fields []Field
}

// Enum is an ordered, non-empty list of variant names.
type Enum struct {
	Variants []string
}

func (*Class) isRawSchema() {}
func (*Enum) isRawSchema() {}

package schema

import "fmt"

// MemberType is a resolved class-field type.
type MemberType interface {
	// Kind returns the variant tag.
	Kind() Kind
	// String renders the type in type-expression form.
	String() string

	member()
}

// MapKeyType is the subset of member types allowed as map keys:
// Num, Str and DefEnum.
type MapKeyType interface {
	MemberType
	mapKey()
}

// OptType is the subset of member types allowed inside Opt: everything
// except Opt itself.
type OptType interface {
	MemberType
	optInner()
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

	// Map maps Key to Value.
	Map struct {
		Key   MapKeyType
		Value MemberType
	}

	// Opt is an optional Inner.
	Opt struct {
		Inner OptType
	}

	// DefClass references a class schema.
	DefClass struct {
		ID ID
	}

	// DefEnum references an enum schema.
	DefEnum struct {
		ID ID
	}
)

func (Num) Kind() Kind { return KindNum }
func (Str) Kind() Kind { return KindStr }
func (Bool) Kind() Kind { return KindBool }
func (Arr) Kind() Kind { return KindArr }
func (Map) Kind() Kind { return KindMap }
func (Opt) Kind() Kind { return KindOpt }
func (DefClass) Kind() Kind { return KindDefClass }
func (DefEnum) Kind() Kind { return KindDefEnum }

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
	return fmt.Sprintf("DefClass(%s)", t.ID)
}

func (t DefEnum) String() string {
	return fmt.Sprintf("DefEnum(%s)", t.ID)
}

func (Num) member() {}
func (Str) member() {}
func (Bool) member() {}
func (Arr) member() {}
func (Map) member() {}
func (Opt) member() {}
func (DefClass) member() {}
func (DefEnum) member() {}

func (Num) mapKey() {}
func (Str) mapKey() {}
func (DefEnum) mapKey() {}

func (Num) optInner() {}
func (Str) optInner() {}
func (Bool) optInner() {}
func (Arr) optInner() {}
func (Map) optInner() {}
func (DefClass) optInner() {}
func (DefEnum) optInner() {}

// AsMapKey narrows t into the map-key subset.
func AsMapKey(t MemberType) (MapKeyType, error) {
	if k, ok := t.(MapKeyType); ok {
		return k, nil
	}

	return nil, &InvalidMapKeyError{Type: t}
}

// AsOptional narrows t into the optional-inner subset.
func AsOptional(t MemberType) (OptType, error) {
	if o, ok := t.(OptType); ok {
		return o, nil
	}

	return nil, &InvalidOptionalError{Type: t}
}

func typeString(t MemberType) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

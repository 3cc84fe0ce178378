package schema

// Schema is a resolved schema body: *Class or *Enum.
type Schema interface {
	isSchema()
}

// Field is a named class member. Fields keep their declaration order.
type Field struct {
	Name string
	Type MemberType
}

// Class is a resolved class schema.
type Class struct {
	Fields []Field
}

// Field returns the field called name.
func (c *Class) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Enum is a resolved enum schema. Variant order is significant: it is the
// declaration order and the first variant is the fallback default.
type Enum struct {
	Variants []string
	// Default is the selected default variant, always one of Variants.
	Default string
}

// Has reports whether variant is declared.
func (e *Enum) Has(variant string) bool {
	for _, v := range e.Variants {
		if v == variant {
			return true
		}
	}

	return false
}

func (*Class) isSchema() {}
func (*Enum) isSchema() {}

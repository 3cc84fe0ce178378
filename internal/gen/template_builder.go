package gen

import (
	"fmt"

	"desergen/internal/naming"
	"desergen/internal/schema"
)

// enumData holds all data needed for the enum template.
type enumData struct {
	Header   string
	Source   string
	Comments bool
	Imports  []importSpec
	Names    symbolNames
	Members  []enumMember
	Default  string
	Table    []tableEntry
}

type enumMember struct {
	Member string
	Value  string
}

// tableEntry maps one accepted input string to an enum member.
type tableEntry struct {
	Key    string
	Member string
}

// classData holds all data needed for the class template.
type classData struct {
	Header   string
	Source   string
	Comments bool
	Imports  []importSpec
	Names    symbolNames
	Fields   []fieldData
}

// fieldData represents a single class property and how it is read.
type fieldData struct {
	Name     string
	Property string
	Access   string
	Optional bool
	Type     string
	Keys     string
	Reader   string
	Fallback string
}

func (g *Generator) buildEnumData(info *schema.Info, enum *schema.Enum) (*enumData, error) {
	f := newTypeFormatter(g.reg, info)
	f.rt("DeserializationError")

	data := &enumData{
		Header:   header,
		Source:   info.ModPath.String(),
		Comments: g.config.GenerateComments,
		Names:    namesOf(info),
	}

	memberOf := make(map[string]string, len(enum.Variants))
	variantOf := make(map[string]string, len(enum.Variants))

	for _, variant := range enum.Variants {
		member := naming.EnumMember(variant)
		if other, dup := variantOf[member]; dup {
			return nil, fmt.Errorf("variants %q and %q both map to enum member %s", other, variant, member)
		}

		variantOf[member] = variant
		memberOf[variant] = member

		data.Members = append(data.Members, enumMember{Member: member, Value: jsString(variant)})
	}

	data.Default = memberOf[enum.Default]

	seen := make(map[string]string, len(enum.Variants))
	add := func(key, member string) error {
		if prev, ok := seen[key]; ok {
			if prev != member {
				return fmt.Errorf("input %q maps to both %s and %s", key, prev, member)
			}

			return nil
		}

		seen[key] = member
		data.Table = append(data.Table, tableEntry{Key: jsString(key), Member: member})

		return nil
	}

	for _, variant := range enum.Variants {
		if err := add(variant, memberOf[variant]); err != nil {
			return nil, err
		}
	}

	for _, variant := range enum.Variants {
		for _, alias := range info.Validation.AliasesOf(variant) {
			if err := add(alias, memberOf[variant]); err != nil {
				return nil, err
			}
		}
	}

	imports, err := f.imports(g.outputFile(info), g.runtimeFile())
	if err != nil {
		return nil, err
	}

	data.Imports = imports

	return data, nil
}

func (g *Generator) buildClassData(info *schema.Info, class *schema.Class) (*classData, error) {
	f := newTypeFormatter(g.reg, info)
	f.rt("asObject")

	data := &classData{
		Header:   header,
		Source:   info.ModPath.String(),
		Comments: g.config.GenerateComments,
		Names:    namesOf(info),
	}

	if len(class.Fields) > 0 {
		f.rt("field")
	}

	for _, field := range class.Fields {
		fd, err := g.buildFieldData(f, info, field)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}

		data.Fields = append(data.Fields, *fd)
	}

	imports, err := f.imports(g.outputFile(info), g.runtimeFile())
	if err != nil {
		return nil, err
	}

	data.Imports = imports

	return data, nil
}

func (g *Generator) buildFieldData(f *typeFormatter, info *schema.Info, field schema.Field) (*fieldData, error) {
	declared := field.Type

	opt, optional := field.Type.(schema.Opt)
	if optional {
		declared = opt.Inner
	}

	tsType, err := f.tsType(declared)
	if err != nil {
		return nil, err
	}

	reader, err := f.reader(field.Type)
	if err != nil {
		return nil, err
	}

	fallback, err := g.fallback(f, info, field, reader)
	if err != nil {
		return nil, err
	}

	keys := append([]string{field.Name}, info.Validation.AliasesOf(field.Name)...)

	return &fieldData{
		Name:     field.Name,
		Property: naming.PropertyName(field.Name),
		Access:   naming.PropertyAccess("out", field.Name),
		Optional: optional,
		Type:     tsType,
		Keys:     jsStringList(keys),
		Reader:   reader,
		Fallback: fallback,
	}, nil
}

// fallback decides what an absent field evaluates to. An empty result
// makes the field required.
//
// Fields listed in `required` never fall back. A declared default comes
// next. When only `allow_undefined` is given, every other non-optional
// field is required. Everything else falls back to its zero value.
func (g *Generator) fallback(f *typeFormatter, info *schema.Info, field schema.Field, reader string) (string, error) {
	v := info.Validation

	if v.IsRequired(field.Name) {
		return "", nil
	}

	if v != nil {
		if value, ok := v.Defaults.Fields[field.Name]; ok {
			if err := g.checkEnumDefault(field.Type, value); err != nil {
				return "", err
			}

			return fmt.Sprintf("() => %s(%s, path + %s)",
				reader, defaultLiteral(field.Type, value), jsString("."+field.Name)), nil
		}

		if v.Required == nil && v.AllowUndefined != nil &&
			!v.AllowsUndefined(field.Name) && field.Type.Kind() != schema.KindOpt {
			return "", nil
		}
	}

	return f.zero(field.Type)
}

// checkEnumDefault rejects a default for an enum-typed field that names no
// variant or alias of the enum.
func (g *Generator) checkEnumDefault(t schema.MemberType, value string) error {
	if opt, ok := t.(schema.Opt); ok {
		t = opt.Inner
	}

	ref, ok := t.(schema.DefEnum)
	if !ok {
		return nil
	}

	target, err := g.reg.Get(ref.ID)
	if err != nil {
		return err
	}

	enum := target.Enum()
	if enum == nil {
		return fmt.Errorf("%s is not an enum", target.ModPath)
	}

	variant := unquoteDefault(value)

	if enum.Has(variant) {
		return nil
	}

	for _, v := range enum.Variants {
		for _, alias := range target.Validation.AliasesOf(v) {
			if alias == variant {
				return nil
			}
		}
	}

	return fmt.Errorf("default %q is not a variant of %s", variant, target.Name)
}

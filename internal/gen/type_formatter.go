package gen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"desergen/internal/naming"
	"desergen/internal/registry"
	"desergen/internal/schema"
)

// symbolNames are the exported identifiers generated for one schema.
type symbolNames struct {
	Type        string
	Read        string
	Parse       string
	Deserialize string
	Default     string
	Table       string
}

func namesOf(info *schema.Info) symbolNames {
	prefix := naming.ConstName(info.Name)

	return symbolNames{
		Type:        info.Name,
		Read:        naming.FuncName("read", info.Name),
		Parse:       naming.FuncName("parse", info.Name),
		Deserialize: naming.FuncName("deserialize", info.Name),
		Default:     prefix + "_DEFAULT",
		Table:       prefix + "_NAMES",
	}
}

// importSpec represents an import statement.
type importSpec struct {
	Symbols []string
	Path    string
}

// Statement renders the import line.
func (s importSpec) Statement() string {
	return fmt.Sprintf("import { %s } from %s;", strings.Join(s.Symbols, ", "), jsString(s.Path))
}

// typeFormatter renders TypeScript types and reader expressions for the
// file of one schema, recording every symbol the file must import.
type typeFormatter struct {
	reg     *registry.Registry
	self    *schema.Info
	runtime map[string]struct{}
	refs    map[schema.ID]map[string]struct{}
}

func newTypeFormatter(reg *registry.Registry, self *schema.Info) *typeFormatter {
	return &typeFormatter{
		reg:     reg,
		self:    self,
		runtime: make(map[string]struct{}),
		refs:    make(map[schema.ID]map[string]struct{}),
	}
}

// rt marks a runtime helper as used and returns its name.
func (f *typeFormatter) rt(name string) string {
	f.runtime[name] = struct{}{}
	return name
}

// ref resolves id, checks that the target has the referenced kind and
// marks symbol of the target as used. Symbols of the schema being
// generated need no import.
func (f *typeFormatter) ref(id schema.ID, kind schema.Kind, pick func(symbolNames) string) (string, error) {
	info, err := f.reg.Get(id)
	if err != nil {
		return "", err
	}

	switch {
	case kind == schema.KindDefClass && info.Class() == nil:
		return "", fmt.Errorf("DefClass(%s) references an enum", info.ModPath)
	case kind == schema.KindDefEnum && info.Enum() == nil:
		return "", fmt.Errorf("DefEnum(%s) references a class", info.ModPath)
	}

	symbol := pick(namesOf(info))

	if id != f.self.ID {
		if f.refs[id] == nil {
			f.refs[id] = make(map[string]struct{})
		}

		f.refs[id][symbol] = struct{}{}
	}

	return symbol, nil
}

// tsType renders the TypeScript type of t.
func (f *typeFormatter) tsType(t schema.MemberType) (string, error) {
	switch t := t.(type) {
	case schema.Num:
		return "number", nil
	case schema.Str:
		return "string", nil
	case schema.Bool:
		return "boolean", nil

	case schema.Arr:
		elem, err := f.tsType(t.Elem)
		if err != nil {
			return "", err
		}

		if t.Elem.Kind() == schema.KindOpt {
			elem = "(" + elem + ")"
		}

		return elem + "[]", nil

	case schema.Map:
		value, err := f.tsType(t.Value)
		if err != nil {
			return "", err
		}

		switch key := t.Key.(type) {
		case schema.Num:
			return "Record<number, " + value + ">", nil
		case schema.Str:
			return "Record<string, " + value + ">", nil
		case schema.DefEnum:
			name, err := f.ref(key.ID, schema.KindDefEnum, func(n symbolNames) string { return n.Type })
			if err != nil {
				return "", err
			}

			return "Partial<Record<" + name + ", " + value + ">>", nil
		default:
			return "", fmt.Errorf("unsupported map key %s", t.Key)
		}

	case schema.Opt:
		inner, err := f.tsType(t.Inner)
		if err != nil {
			return "", err
		}

		return inner + " | undefined", nil

	case schema.DefClass:
		return f.ref(t.ID, schema.KindDefClass, func(n symbolNames) string { return n.Type })
	case schema.DefEnum:
		return f.ref(t.ID, schema.KindDefEnum, func(n symbolNames) string { return n.Type })

	default:
		return "", fmt.Errorf("unsupported member type %T", t)
	}
}

// reader renders the runtime expression that reads a value of type t.
func (f *typeFormatter) reader(t schema.MemberType) (string, error) {
	switch t := t.(type) {
	case schema.Num:
		return f.rt("asNumber"), nil
	case schema.Str:
		return f.rt("asString"), nil
	case schema.Bool:
		return f.rt("asBoolean"), nil

	case schema.Arr:
		elem, err := f.reader(t.Elem)
		if err != nil {
			return "", err
		}

		return f.rt("asArray") + "(" + elem + ")", nil

	case schema.Map:
		key, err := f.keyReader(t.Key)
		if err != nil {
			return "", err
		}

		value, err := f.reader(t.Value)
		if err != nil {
			return "", err
		}

		return f.rt("asRecord") + "(" + key + ", " + value + ")", nil

	case schema.Opt:
		inner, err := f.reader(t.Inner)
		if err != nil {
			return "", err
		}

		return f.rt("asOptional") + "(" + inner + ")", nil

	case schema.DefClass:
		return f.ref(t.ID, schema.KindDefClass, func(n symbolNames) string { return n.Read })
	case schema.DefEnum:
		return f.ref(t.ID, schema.KindDefEnum, func(n symbolNames) string { return n.Parse })

	default:
		return "", fmt.Errorf("unsupported member type %T", t)
	}
}

func (f *typeFormatter) keyReader(k schema.MapKeyType) (string, error) {
	switch k := k.(type) {
	case schema.Num:
		return f.rt("keyNumber"), nil
	case schema.Str:
		return f.rt("keyString"), nil
	case schema.DefEnum:
		return f.ref(k.ID, schema.KindDefEnum, func(n symbolNames) string { return n.Parse })
	default:
		return "", fmt.Errorf("unsupported map key %s", k)
	}
}

// zero renders the fallback used when a non-required field is absent.
// Class references have no zero value and return "".
func (f *typeFormatter) zero(t schema.MemberType) (string, error) {
	switch t := t.(type) {
	case schema.Opt:
		return "() => undefined", nil
	case schema.Num:
		return "() => 0", nil
	case schema.Str:
		return `() => ""`, nil
	case schema.Bool:
		return "() => false", nil
	case schema.Arr:
		return "() => []", nil
	case schema.Map:
		return "() => ({})", nil
	case schema.DefEnum:
		def, err := f.ref(t.ID, schema.KindDefEnum, func(n symbolNames) string { return n.Default })
		if err != nil {
			return "", err
		}

		return "() => " + def, nil
	default:
		return "", nil
	}
}

// imports returns the runtime import followed by one import per referenced
// schema, ordered by module path.
func (f *typeFormatter) imports(file, runtimeFile string) ([]importSpec, error) {
	var specs []importSpec

	if len(f.runtime) > 0 {
		p, err := importPath(file, runtimeFile)
		if err != nil {
			return nil, err
		}

		specs = append(specs, importSpec{Symbols: sortedSet(f.runtime), Path: p})
	}

	refs := make([]importSpec, 0, len(f.refs))

	for id, symbols := range f.refs {
		info, err := f.reg.Get(id)
		if err != nil {
			return nil, err
		}

		p, err := importPath(file, registry.OutputFile(info)+".ts")
		if err != nil {
			return nil, err
		}

		refs = append(refs, importSpec{Symbols: sortedSet(symbols), Path: p})
	}

	slices.SortFunc(refs, func(a, b importSpec) int { return strings.Compare(a.Path, b.Path) })

	return append(specs, refs...), nil
}

// importPath returns the relative module specifier of target as seen from
// file. Both are slash-separated paths below the output root.
func importPath(file, target string) (string, error) {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(file)), filepath.FromSlash(target))
	if err != nil {
		return "", fmt.Errorf("relative import from %s to %s: %w", file, target, err)
	}

	rel = strings.TrimSuffix(filepath.ToSlash(rel), ".ts")
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}

	return rel, nil
}

// defaultLiteral renders a declared field default. Values that are valid
// JSON are emitted verbatim, except for string and enum fields which only
// keep JSON strings; anything else becomes a string literal.
func defaultLiteral(t schema.MemberType, value string) string {
	if opt, ok := t.(schema.Opt); ok {
		t = opt.Inner
	}

	switch t.(type) {
	case schema.Str, schema.DefEnum:
		return jsString(unquoteDefault(value))
	}

	if json.Valid([]byte(value)) {
		return strings.TrimSpace(value)
	}

	return jsString(value)
}

// unquoteDefault strips JSON string quoting from value, if present.
func unquoteDefault(value string) string {
	var s string
	if json.Unmarshal([]byte(value), &s) == nil {
		return s
	}

	return value
}

// jsString renders s as a double-quoted string literal.
func jsString(s string) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)

	return strings.TrimSuffix(buf.String(), "\n")
}

func jsStringList(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = jsString(s)
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}

	slices.Sort(out)

	return out
}

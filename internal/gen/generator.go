package gen

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"desergen/internal/naming"
	"desergen/internal/registry"
	"desergen/internal/schema"
)

const header = "// Code generated by desergen. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimeModule is the file stem of the shared runtime module written
	// at the output root.
	RuntimeModule string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RuntimeModule:    "desergen_runtime",
		GenerateComments: true,
	}
}

// Generator generates TypeScript modules from a registry.
type Generator struct {
	config GeneratorConfig
	reg    *registry.Registry
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.RuntimeModule == "" {
		config.RuntimeModule = DefaultGeneratorConfig().RuntimeModule
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated TypeScript module.
type GeneratedFile struct {
	// Filename is the slash-separated path below the output directory
	// (e.g., "a/b/user_profile.ts").
	Filename string
	// Content is the module source.
	Content []byte
}

// Generate renders the runtime module and one module per schema. Files are
// returned sorted by name.
func (g *Generator) Generate(reg *registry.Registry) ([]GeneratedFile, error) {
	g.reg = reg

	files := []GeneratedFile{{
		Filename: g.runtimeFile(),
		Content:  []byte(runtimeSource),
	}}

	owner := map[string]string{g.runtimeFile(): "the runtime module"}

	for _, info := range reg.Sorted() {
		filename := g.outputFile(info)
		if prev, ok := owner[filename]; ok {
			return nil, fmt.Errorf("output file %s is claimed by both %s and %s", filename, prev, info.ModPath)
		}

		owner[filename] = info.ModPath.String()

		file, err := g.generateSchema(info)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", info.ModPath, err)
		}

		files = append(files, *file)
	}

	slices.SortFunc(files, func(a, b GeneratedFile) int { return strings.Compare(a.Filename, b.Filename) })

	return files, nil
}

func (g *Generator) generateSchema(info *schema.Info) (*GeneratedFile, error) {
	if !naming.IsIdentifier(info.Name) || naming.IsReserved(info.Name) {
		return nil, fmt.Errorf("type name %q is not a valid identifier", info.Name)
	}

	var (
		tmpl *template.Template
		data any
		err  error
	)

	switch s := info.Schema.(type) {
	case *schema.Enum:
		tmpl = enumTemplate
		data, err = g.buildEnumData(info, s)
	case *schema.Class:
		tmpl = classTemplate
		data, err = g.buildClassData(info, s)
	default:
		return nil, fmt.Errorf("unsupported schema %T", info.Schema)
	}

	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return &GeneratedFile{
		Filename: g.outputFile(info),
		Content:  buf.Bytes(),
	}, nil
}

func (g *Generator) outputFile(info *schema.Info) string {
	return registry.OutputFile(info) + ".ts"
}

func (g *Generator) runtimeFile() string {
	return g.config.RuntimeModule + ".ts"
}

var enumTemplate = template.Must(template.New("enum").Parse(`{{.Header}}
// Source: {{.Source}}
{{range .Imports}}
{{.Statement}}{{end}}
{{if .Comments}}
/** Variants of {{.Names.Type}}. */{{end}}
export enum {{.Names.Type}} {
{{- range .Members}}
	{{.Member}} = {{.Value}},
{{- end}}
}
{{if .Comments}}
/** Value used when input does not name a variant. */{{end}}
export const {{.Names.Default}}: {{.Names.Type}} = {{.Names.Type}}.{{.Default}};

const {{.Names.Table}}: Readonly<Record<string, {{.Names.Type}}>> = {
{{- range .Table}}
	{{.Key}}: {{$.Names.Type}}.{{.Member}},
{{- end}}
};
{{if .Comments}}
/** Reads a {{.Names.Type}} from a variant name or alias, throwing on anything else. */{{end}}
export function {{.Names.Parse}}(value: unknown, path: string): {{.Names.Type}} {
	if (typeof value === "string" && Object.prototype.hasOwnProperty.call({{.Names.Table}}, value)) {
		return {{.Names.Table}}[value];
	}

	throw new DeserializationError(path, "unknown {{.Names.Type}} variant " + JSON.stringify(value));
}
{{if .Comments}}
/** Reads a {{.Names.Type}}, falling back to {{.Names.Default}}. */{{end}}
export function {{.Names.Deserialize}}(value: unknown): {{.Names.Type}} {
	if (typeof value === "string" && Object.prototype.hasOwnProperty.call({{.Names.Table}}, value)) {
		return {{.Names.Table}}[value];
	}

	return {{.Names.Default}};
}
`))

var classTemplate = template.Must(template.New("class").Parse(`{{.Header}}
// Source: {{.Source}}
{{range .Imports}}
{{.Statement}}{{end}}
{{if .Comments}}
/** Fields of {{.Names.Type}}. */{{end}}
export class {{.Names.Type}} {
{{- range .Fields}}
	{{.Property}}{{if .Optional}}?{{else}}!{{end}}: {{.Type}};
{{- end}}
}
{{if .Comments}}
/** Reads a {{.Names.Type}} found at path. */{{end}}
export function {{.Names.Read}}(value: unknown, path: string): {{.Names.Type}} {
	const source = asObject(value, path);
	const out = new {{.Names.Type}}();
{{range .Fields}}
	{{.Access}} = field(source, path, {{.Keys}}, {{.Reader}}{{if .Fallback}}, {{.Fallback}}{{end}});
{{- end}}
{{- if not .Fields}}
	void source;
{{- end}}

	return out;
}
{{if .Comments}}
/** Deserializes a {{.Names.Type}}, throwing DeserializationError on invalid input. */{{end}}
export function {{.Names.Deserialize}}(value: unknown): {{.Names.Type}} {
	return {{.Names.Read}}(value, "$");
}
`))

package registry

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"desergen/internal/diagnostic"
	"desergen/internal/schema"
)

// Lint reports, as warnings, problems that do not stop a build: type
// names or output files shared by several schemas, and validation
// metadata naming fields or variants the schema does not declare.
func Lint(reg *Registry) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	infos := reg.Sorted()

	byName := make(map[string][]string)
	byFile := make(map[string][]string)

	for _, info := range infos {
		mp := info.ModPath.String()
		byName[info.Name] = append(byName[info.Name], mp)
		byFile[OutputFile(info)] = append(byFile[OutputFile(info)], mp)

		lintValidation(&d, info)
	}

	for _, name := range sortedKeys(byName) {
		if owners := byName[name]; len(owners) > 1 {
			for _, owner := range owners {
				d.AddWarning(diagnostic.CodeDuplicateName,
					fmt.Sprintf("type name %q is also used by %s", name, others(owners, owner)), owner, "")
			}
		}
	}

	for _, file := range sortedKeys(byFile) {
		if owners := byFile[file]; len(owners) > 1 {
			for _, owner := range owners {
				d.AddWarning(diagnostic.CodeDuplicateFile,
					fmt.Sprintf("output file %q is also written by %s", file, others(owners, owner)), owner, "")
			}
		}
	}

	d.Sort()

	return d
}

// OutputFile returns the slash-separated output stem of info: its module
// path directories followed by its file name.
func OutputFile(info *schema.Info) string {
	return path.Join(append(info.ModPath.Parent(), info.FileName)...)
}

func lintValidation(d *diagnostic.Diagnostics, info *schema.Info) {
	v := info.Validation
	if v == nil {
		return
	}

	mp := info.ModPath.String()

	switch s := info.Schema.(type) {
	case *schema.Class:
		known := func(name string) bool {
			_, ok := s.Field(name)
			return ok
		}

		check := func(what string, names []string) {
			for _, name := range names {
				if !known(name) {
					d.AddWarning(diagnostic.CodeUnknownField,
						fmt.Sprintf("%s names undeclared field %q", what, name), mp, name)
				}
			}
		}

		check("required", v.Required)
		check("allow_undefined", v.AllowUndefined)
		check("aliases", sortedKeys(v.Aliases))
		check("defaults", sortedKeys(v.Defaults.Fields))

	case *schema.Enum:
		for _, variant := range sortedKeys(v.Aliases) {
			if !s.Has(variant) {
				d.AddWarning(diagnostic.CodeUnknownField,
					fmt.Sprintf("aliases names undeclared variant %q", variant), mp, variant)
			}
		}
	}
}

func others(owners []string, self string) string {
	rest := make([]string, 0, len(owners)-1)
	for _, o := range owners {
		if o != self {
			rest = append(rest, o)
		}
	}

	return strings.Join(rest, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

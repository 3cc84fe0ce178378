// Package naming derives target-language names from module path
// components, class fields and enum variants.
//
// Casing is delegated to github.com/iancoleman/strcase; this package adds
// identifier validity checks and quoting for names that cannot be emitted
// bare.
package naming

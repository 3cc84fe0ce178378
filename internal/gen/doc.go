// Package gen emits TypeScript deserializers from a finished registry.
//
// Every schema becomes one module at <mod_path dirs>/<file_name>.ts next to
// a shared runtime module holding the reader primitives. Output is fully
// determined by the registry: files, imports and table entries are sorted.
//
// Emitted shapes:
//   - Enums: a string enum, a default constant, a strict parse function
//     and a deserialize function that falls back to the default
//   - Classes: a class with one property per field, a read function that
//     applies aliases, defaults and fallbacks, and a deserialize entry point
package gen

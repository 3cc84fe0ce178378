// Package modpath provides the Module Path value type that names a schema.
//
// A module path is a non-empty sequence of non-blank components written
// joined by "::" (e.g. "user::address"). It is independent of where the
// schema is stored, but converts to a relative file location by joining the
// components with a path separator ("user/address").
//
// Path values are immutable and comparable, so they can be used directly as
// map keys.
package modpath

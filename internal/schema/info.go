package schema

import (
	"time"

	"desergen/internal/modpath"
)

// Info is a fully resolved schema as stored in the registry.
type Info struct {
	// ID is the identifier assigned to the requested module path.
	ID ID
	// Name is the target type name (override or cased last path component).
	Name string
	// FileName is the output file stem (override or last path component).
	FileName string
	// ModPath is the schema's module path (override or requested path).
	ModPath modpath.Path
	// Schema is the resolved body.
	Schema Schema
	// Validation is the optional deserialization metadata.
	Validation *ValidationInfo

	// Source is the file the schema was loaded from, if any.
	Source string
	// LastUpdated is the source modification time, if known.
	LastUpdated time.Time
}

// Class returns the class body, or nil if the schema is an enum.
func (i *Info) Class() *Class {
	c, _ := i.Schema.(*Class)
	return c
}

// Enum returns the enum body, or nil if the schema is a class.
func (i *Info) Enum() *Enum {
	e, _ := i.Schema.(*Enum)
	return e
}

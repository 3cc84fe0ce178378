// Package loader locates and decodes schema documents.
//
// A schema requested at module path a::b::c lives at a/b/c.yaml (or
// a/b/c.yml) under the schemas directory.
package loader

// Package registry turns a requested set of module paths into a finished,
// read-only Registry of resolved schemas.
//
// A build runs in two phases. AssignIDs gives every requested path an
// identifier and produces the complete Lookup table; only then are schema
// documents loaded and resolved, in parallel, against that table. Because
// every identifier exists before any resolution starts, forward and
// mutually recursive references resolve without ordering concerns.
//
// Resolution narrows map keys and optional inner types into their
// restricted subsets; the narrowing is the validation step. Class fields
// are resolved in declaration order and the first failing field aborts
// that schema. Across the batch every failing schema is collected into a
// BuildError and no Registry is returned.
package registry

// Package watch re-runs the whole generation batch when schema files or
// the config file change.
//
// Events are debounced so an editor save that touches several files
// triggers one run. Directories created under a watched tree are picked
// up as they appear.
package watch

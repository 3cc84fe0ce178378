// Package config loads the desergen tool configuration.
//
// The file format is picked by extension: TOML (.toml), YAML (.yaml, .yml),
// JSON (.json) or HCL (.hcl). ${VAR} references are expanded before decoding
// and DESERGEN_* environment variables override file values. Find locates
// the default config file of a project directory.
package config

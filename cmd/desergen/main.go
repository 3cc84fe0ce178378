// Package main is the entry point for desergen.
//
// desergen reads class and enum schemas written in YAML, resolves their
// cross references into a registry and emits TypeScript deserializers:
//   - generate (default): build the registry and write the output tree
//   - check: report build errors and lint warnings without writing
//   - dump: print the resolved registry
package main

var version = "dev"

func main() {
	Execute()
}

// Package main provides the CLI entrypoint for newtype-generator.
//
// newtype-generator is a go:generate tool that:
//   - Reads a YAML file describing wrapper types around one base value
//   - Checks predicates, error functions and names against the package's types
//   - Generates a fallible constructor, a read-only accessor and
//     JSON/YAML/text decoders that reject invalid values while parsing
package main

import (
	"os"

	"newtype-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

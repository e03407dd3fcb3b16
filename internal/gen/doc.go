// Package gen provides deterministic Go code generation for validated newtypes.
//
// Generation approach uses text/template + go/format. Every newtype becomes
// one file holding:
//   - the wrapper type with a single unexported field
//   - the fallible constructor (unless written by hand)
//   - the read-only accessor
//   - UnmarshalJSON/MarshalJSON, UnmarshalYAML/MarshalYAML and
//     UnmarshalText/MarshalText for the requested formats
//
// Decoders decode the base type first and then call the constructor, so a
// value that fails its predicate is rejected while parsing.
package gen

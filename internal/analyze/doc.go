// Package analyze loads the package a spec generates into and resolves the
// names the spec refers to.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to answer:
//   - what Go type a base type expression denotes, and how generated code spells it
//   - whether a predicate, error function or manual constructor exists and
//     what its signature is
//   - whether an identifier is already declared by hand in the package
//
// Files previously written by newtype-generator are recognised by their
// header and excluded, so stale output never blocks regeneration.
package analyze

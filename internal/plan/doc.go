// Package plan joins a newtype spec with the analysis of its target package
// and produces a Plan consumed by code generation.
//
// Resolution pipeline:
//  1. Validate the spec structurally (schema.Validate)
//  2. Normalize each newtype's predicate and error form into one Check
//  3. Resolve the base type, predicate, error function and manual
//     constructor against the package and check their signatures
//  4. Emit diagnostics; generation must not run while any error is present
//
// Resolution can also run offline, without a package. Base types are then
// taken as written and functions are assumed to follow the conventions
// (predicate and error function take *T); the compiler checks the result.
package plan

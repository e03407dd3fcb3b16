// Package diagnostic provides coded errors, warnings and infos reported while
// a newtype spec is validated, analyzed against its package and planned.
//
// Every stage appends to a *Diagnostics value instead of failing on the first
// problem, so a single run reports every misconfiguration in the spec file.
// Generation refuses to write output while any error is present.
package diagnostic

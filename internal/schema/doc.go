// Package schema provides the YAML schema for newtype declarations, its
// loader, normalisation and structural validation.
//
// A spec file lives next to the package it generates into:
//
//	version: "1"
//	json: std            # or goccy
//	newtypes:
//	  - name: Percent
//	    base: uint32
//	    doc: Percent is a whole percentage.
//	    attributes:
//	      - "//nolint:recvcheck"
//	    predicate: isPercent
//	    message: "percent must be in range 0-100"
//	    formats: [json, yaml]
//	  - name: StrictPercent
//	    base: uint32
//	    predicate: isPercent
//	    error_func: percentRangeError
//	    error_type: string
//	  - name: Label
//	    base: string
//	    formats: text
//	  - name: LegacyPercent
//	    base: uint32
//	    manual: true
//
// # Error forms
//
// A predicate is paired with exactly one error form:
//   - message: a fixed text, emitted as a sentinel error variable
//   - error_func: a function of the rejected value returning a string or an error
//
// Both forms are lowered by Normalize into a single Check so the planner and
// the generator only handle one shape.
//
// # Manual constructors
//
// With manual: true the constructor is not generated. The decoders still
// call it, so the package only compiles once the constructor is written by hand.
package schema

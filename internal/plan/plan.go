package plan

import (
	"newtype-generator/internal/analyze"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/schema"
)

// Plan is the output of resolution. It contains everything the generator
// needs and nothing it has to look up again.
type Plan struct {
	// PackageName is the name of the package code is generated into.
	PackageName string
	// PackagePath is its import path (empty when resolved offline).
	PackagePath string
	// OutputDir is where generated files go.
	OutputDir string
	// JSON is the codec used by JSON methods.
	JSON schema.JSONCodec
	// Wrappers holds one entry per newtype, in spec order.
	Wrappers []Wrapper
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Wrapper is a fully resolved newtype.
type Wrapper struct {
	// Name of the generated type.
	Name string
	// Doc holds doc comment lines without the leading "// ".
	Doc []string
	// Attributes holds comment lines emitted verbatim after Doc.
	Attributes []string
	// Base is the resolved base type.
	Base analyze.TypeInfo
	// Copy tells how the base value is kept apart from callers.
	Copy analyze.CopyMode
	// Constructor is the fallible constructor's name.
	Constructor string
	// Accessor is the read-only accessor method's name.
	Accessor string
	// Manual is true when Constructor is written by hand.
	Manual bool
	// Check is nil for identity wraps and manual constructors.
	Check *Check
	// Formats lists the generated decoders/encoders.
	Formats schema.Formats
	// FileName is the generated file's base name.
	FileName string
}

// Check is the resolved validation step of a constructor.
type Check struct {
	// Predicate is the validity function.
	Predicate string
	// Arg is the argument expression passed to Predicate: "val" or "&val".
	Arg string
	// Failure is the resolved error.
	Failure Failure
}

// FailureKind tells how the error value is produced.
type FailureKind int

const (
	// FailureSentinel returns a package-level errors.New(Message) variable.
	FailureSentinel FailureKind = iota
	// FailureString wraps the text returned by an error function in errors.New.
	FailureString
	// FailureError returns the error function's result as is.
	FailureError
)

// Failure is the resolved error of a rejected value.
type Failure struct {
	Kind FailureKind
	// Sentinel and Message are set for FailureSentinel.
	Sentinel string
	Message  string
	// Func and Arg are set for dynamic failures.
	Func string
	Arg  string
	// Convert is set when Func returns a named string type.
	Convert bool
}

// Expr renders the Go expression that produces the error value.
func (f Failure) Expr() string {
	switch f.Kind {
	case FailureString:
		call := f.Func + "(" + f.Arg + ")"
		if f.Convert {
			call = "string(" + call + ")"
		}

		return "errors.New(" + call + ")"
	case FailureError:
		return f.Func + "(" + f.Arg + ")"
	default:
		return f.Sentinel
	}
}

// NeedsErrorsPkg reports whether the rendered failure uses package errors.
func (f Failure) NeedsErrorsPkg() bool {
	return f.Kind == FailureSentinel || f.Kind == FailureString
}

// Has reports whether the wrapper generates methods for format.
func (w *Wrapper) Has(format schema.Format) bool {
	return w.Formats.Has(format)
}

package schema

import (
	"fmt"

	"newtype-generator/internal/common"
)

//go:generate go tool stringer -type=ErrorForm -trimprefix=ErrorForm -output=errorform_string.go

// File represents the root of a YAML newtype spec file.
type File struct {
	// Version of the schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Package is the package pattern the newtypes are generated into.
	// Defaults to the directory holding the spec file.
	Package string `yaml:"package,omitempty"`

	// Output is the directory generated files are written to.
	// Defaults to the package directory.
	Output string `yaml:"output,omitempty"`

	// JSON selects the codec used by generated JSON methods.
	JSON JSONCodec `yaml:"json,omitempty"`

	// Newtypes is the list of wrapper declarations.
	Newtypes []Newtype `yaml:"newtypes"`
}

// Newtype declares one validated wrapper around a base value.
type Newtype struct {
	// Name of the generated type.
	Name string `yaml:"name"`

	// Base is the wrapped type: a builtin, a type of the target package,
	// or a selector over one of its imports (e.g. "time.Duration").
	Base string `yaml:"base"`

	// Visibility is derived from the case of Name when empty.
	Visibility Visibility `yaml:"visibility,omitempty"`

	// Doc is attached as the type's doc comment.
	Doc string `yaml:"doc,omitempty"`

	// Attributes are comment lines emitted verbatim above the type.
	Attributes Lines `yaml:"attributes,omitempty"`

	// Predicate names a func(T) bool or func(*T) bool in the package.
	Predicate string `yaml:"predicate,omitempty"`

	// Message is the fixed error text (message form).
	Message string `yaml:"message,omitempty"`

	// ErrorFunc names a func(T) E or func(*T) E in the package (dynamic form).
	ErrorFunc string `yaml:"error_func,omitempty"`

	// ErrorType optionally pins the result type of ErrorFunc.
	ErrorType string `yaml:"error_type,omitempty"`

	// Manual leaves the constructor to be written by hand.
	Manual bool `yaml:"manual,omitempty"`

	// Formats lists the decoders (and matching encoders) to generate.
	Formats Formats `yaml:"formats,omitempty"`

	// Constructor overrides the constructor name.
	Constructor string `yaml:"constructor,omitempty"`

	// Accessor overrides the accessor method name.
	Accessor string `yaml:"accessor,omitempty"`

	// Sentinel overrides the sentinel error variable name of the message form.
	Sentinel string `yaml:"sentinel,omitempty"`
}

// Visibility of a generated type.
type Visibility string

const (
	// VisibilityDefault derives visibility from the case of the name.
	VisibilityDefault Visibility = ""
	// VisibilityPublic requires an exported name.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate requires an unexported name.
	VisibilityPrivate Visibility = "private"
	// VisibilityScoped is an exported name meant for an internal package.
	VisibilityScoped Visibility = "scoped"
)

// IsValid returns true if the visibility is a recognized value.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityDefault, VisibilityPublic, VisibilityPrivate, VisibilityScoped:
		return true
	default:
		return false
	}
}

// Exported reports whether the visibility requires an exported identifier.
func (v Visibility) Exported() bool {
	return v == VisibilityPublic || v == VisibilityScoped
}

// JSONCodec selects the JSON package imported by generated code.
type JSONCodec string

const (
	JSONDefault JSONCodec = ""
	JSONStd     JSONCodec = "std"
	JSONGoccy   JSONCodec = "goccy"
)

// IsValid returns true if the codec is a recognized value.
func (c JSONCodec) IsValid() bool {
	return c == JSONDefault || c == JSONStd || c == JSONGoccy
}

// ImportPath returns the import path of the codec package.
func (c JSONCodec) ImportPath() string {
	if c == JSONGoccy {
		return "github.com/goccy/go-json"
	}

	return "encoding/json"
}

// Format is a structured-data format a newtype can be decoded from.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// IsValid returns true if the format is a recognized value.
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatText
}

// Formats is a list of formats that unmarshals from a single string or a list.
type Formats []Format

// Has reports whether f is present.
func (fs Formats) Has(f Format) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}

	return false
}

// Lines is a list of text lines that unmarshals from a list or a block scalar.
type Lines []string

// ErrorForm distinguishes the two ways of describing a validation failure.
type ErrorForm int

const (
	ErrorFormNone ErrorForm = iota
	ErrorFormMessage
	ErrorFormDynamic
)

// Check is the unified predicate + failure shape both error forms lower to.
type Check struct {
	// Predicate is the validity function name.
	Predicate string
	// Failure describes the error produced when Predicate rejects a value.
	Failure Failure
}

// Failure describes the error value of a rejected base value.
type Failure struct {
	Form ErrorForm
	// Message is set for ErrorFormMessage.
	Message string
	// Func and Type are set for ErrorFormDynamic; Type may be empty.
	Func string
	Type string
}

// EffectiveVisibility returns the declared visibility, or the one implied by
// the case of the name.
func (n *Newtype) EffectiveVisibility() Visibility {
	if n.Visibility != VisibilityDefault {
		return n.Visibility
	}

	if common.IsExported(n.Name) {
		return VisibilityPublic
	}

	return VisibilityPrivate
}

// HasErrorSpec reports whether any error form is configured.
func (n *Newtype) HasErrorSpec() bool {
	return n.Message != "" || n.ErrorFunc != ""
}

// ConstructorName returns the constructor identifier.
func (n *Newtype) ConstructorName() string {
	if n.Constructor != "" {
		return n.Constructor
	}

	if common.IsExported(n.Name) {
		return "New" + n.Name
	}

	return "new" + common.Export(n.Name)
}

// AccessorName returns the accessor method identifier.
func (n *Newtype) AccessorName() string {
	if n.Accessor != "" {
		return n.Accessor
	}

	return "Value"
}

// SentinelName returns the sentinel error identifier of the message form.
func (n *Newtype) SentinelName() string {
	if n.Sentinel != "" {
		return n.Sentinel
	}

	if common.IsExported(n.Name) {
		return "ErrInvalid" + n.Name
	}

	return "errInvalid" + common.Export(n.Name)
}

// formatMethods lists the methods generated per format.
var formatMethods = []struct {
	format  Format
	methods []string
}{
	{FormatJSON, []string{"UnmarshalJSON", "MarshalJSON"}},
	{FormatYAML, []string{"UnmarshalYAML", "MarshalYAML"}},
	{FormatText, []string{"UnmarshalText", "MarshalText"}},
}

// MethodNames returns the methods generated on the type: the accessor
// followed by the decoders and encoders of its formats.
func (n *Newtype) MethodNames() []string {
	names := []string{n.AccessorName()}

	for _, fm := range formatMethods {
		if n.Formats.Has(fm.format) {
			names = append(names, fm.methods...)
		}
	}

	return names
}

// FileName returns the name of the generated file for this newtype.
func (n *Newtype) FileName() string {
	return common.SnakeCase(n.Name) + "_newtype.go"
}

// String returns "Name(Base)".
func (n *Newtype) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, n.Base)
}

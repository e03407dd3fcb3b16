package analyze

import (
	"go/token"
	"go/types"
)

// GeneratedMarker is the header line of every file newtype-generator writes.
const GeneratedMarker = "// Code generated by newtype-generator. DO NOT EDIT."

// TypeKind classifies a resolved base type.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindString           // underlying string
	TypeKindNumeric          // underlying integer, float or complex
	TypeKindBool             // underlying bool
	TypeKindOther            // anything else (slices, structs, maps, ...)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindString:
		return "string"
	case TypeKindNumeric:
		return "numeric"
	case TypeKindBool:
		return "bool"
	case TypeKindOther:
		return "other"
	default:
		return "unknown"
	}
}

// TypeInfo describes a resolved base type.
type TypeInfo struct {
	// Expr is how generated code in the target package spells the type.
	Expr string
	// ImportPath is the package generated code must import, if any.
	ImportPath string
	// Kind classifies the underlying type.
	Kind TypeKind
	// GoType is the go/types representation.
	GoType types.Type
}

// ArgMode tells how a function takes the base value.
type ArgMode int

const (
	ArgByValue ArgMode = iota
	ArgByPointer
)

// FuncInfo describes a package-level function.
type FuncInfo struct {
	Name      string
	Signature *types.Signature
	Pos       token.Position
}

// Params returns the parameter types.
func (f *FuncInfo) Params() []types.Type {
	return tupleTypes(f.Signature.Params())
}

// Results returns the result types.
func (f *FuncInfo) Results() []types.Type {
	return tupleTypes(f.Signature.Results())
}

func tupleTypes(t *types.Tuple) []types.Type {
	out := make([]types.Type, 0, t.Len())
	for i := range t.Len() {
		out = append(out, t.At(i).Type())
	}

	return out
}

// PackageInfo holds the analysis of the target package.
type PackageInfo struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory on disk

	// Types is the type-checked package.
	Types *types.Package
	// Errors holds type errors outside generated files.
	Errors []string
	// GeneratedFiles holds base names of files written by newtype-generator.
	GeneratedFiles map[string]bool

	fset    *token.FileSet
	imports map[string]*types.Package
	// methods maps receiver type names to methods declared by hand.
	methods map[string]map[string]token.Position
	// loaded caches packages loaded on demand; keyed by import path only so
	// they never become reachable by bare package name.
	loaded map[string]*types.Package
	extra  func(path string) (*types.Package, error)
}

package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"newtype-generator/internal/common"
)

var errorIface = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

// ResolveType resolves a base type expression in the package scope.
//
// Unqualified expressions ("uint32", "[]byte", "Celsius") are evaluated with
// go/types. A qualified name ("time.Duration", "example.com/ids.ID") is
// looked up among the package imports, and loaded on demand when the package
// does not import it yet.
func (p *PackageInfo) ResolveType(expr string) (*TypeInfo, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("empty type expression")
	}

	qualifier, name := common.SplitQualified(expr)
	if qualifier == "" {
		return p.evalType(expr)
	}

	if strings.ContainsAny(expr, "[]*(){}, ") {
		return nil, fmt.Errorf("composite type %q may only use builtin and package-local types", expr)
	}

	imp, err := p.importFor(qualifier)
	if err != nil {
		return nil, err
	}

	obj, ok := imp.Scope().Lookup(name).(*types.TypeName)
	if !ok || !obj.Exported() {
		return nil, fmt.Errorf("type %s not found in package %s", name, imp.Path())
	}

	info := &TypeInfo{
		Expr:   imp.Name() + "." + name,
		GoType: obj.Type(),
		Kind:   classify(obj.Type()),
	}

	if imp.Path() == p.Path {
		info.Expr = name
	} else {
		info.ImportPath = imp.Path()
	}

	return info, nil
}

func (p *PackageInfo) evalType(expr string) (*TypeInfo, error) {
	tv, err := types.Eval(p.fset, p.Types, token.NoPos, expr)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve type %q: %w", expr, err)
	}

	if !tv.IsType() {
		return nil, fmt.Errorf("%q is not a type", expr)
	}

	return &TypeInfo{
		Expr:   expr,
		GoType: tv.Type,
		Kind:   classify(tv.Type),
	}, nil
}

// importFor finds the package a qualifier refers to, by package name or by
// import path.
func (p *PackageInfo) importFor(qualifier string) (*types.Package, error) {
	if qualifier == p.Path || qualifier == p.Name {
		return p.Types, nil
	}

	var byName []*types.Package

	for path, imp := range p.imports {
		if path == qualifier {
			return imp, nil
		}

		if imp.Name() == qualifier {
			byName = append(byName, imp)
		}
	}

	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("qualifier %q is ambiguous, use the full import path", qualifier)
	}

	if imp, ok := p.loaded[qualifier]; ok {
		return imp, nil
	}

	if p.extra == nil {
		return nil, fmt.Errorf("package %q is not imported by %s", qualifier, p.Path)
	}

	imp, err := p.extra(qualifier)
	if err != nil {
		return nil, fmt.Errorf("package %q is not imported by %s: %w", qualifier, p.Path, err)
	}

	if p.loaded == nil {
		p.loaded = make(map[string]*types.Package)
	}

	p.loaded[qualifier] = imp

	return imp, nil
}

// LookupFunc returns the package-level function declared by hand under name.
func (p *PackageInfo) LookupFunc(name string) (*FuncInfo, bool) {
	obj, ok := p.Types.Scope().Lookup(name).(*types.Func)
	if !ok || p.inGeneratedFile(obj) {
		return nil, false
	}

	sig, ok := obj.Type().(*types.Signature)
	if !ok {
		return nil, false
	}

	return &FuncInfo{
		Name:      name,
		Signature: sig,
		Pos:       p.fset.Position(obj.Pos()),
	}, true
}

// DeclaredByHand reports whether name is declared in the package scope by a
// file this tool did not generate.
func (p *PackageInfo) DeclaredByHand(name string) (token.Position, bool) {
	obj := p.Types.Scope().Lookup(name)
	if obj == nil || p.inGeneratedFile(obj) {
		return token.Position{}, false
	}

	return p.fset.Position(obj.Pos()), true
}

// MethodByHand reports whether a file this tool did not generate declares
// method on typeName.
func (p *PackageInfo) MethodByHand(typeName, method string) (token.Position, bool) {
	pos, ok := p.methods[typeName][method]
	return pos, ok
}

func (p *PackageInfo) inGeneratedFile(obj types.Object) bool {
	if p.fset == nil {
		return false
	}

	pos := p.fset.Position(obj.Pos())

	return p.GeneratedFiles[filepath.Base(pos.Filename)]
}

// TypeString renders t the way code inside the package spells it.
func (p *PackageInfo) TypeString(t types.Type) string {
	return types.TypeString(t, func(other *types.Package) string {
		if other == p.Types {
			return ""
		}

		return other.Name()
	})
}

// MatchUnary checks that f takes exactly one argument of type base or *base
// and reports which of the two it takes.
func MatchUnary(f *FuncInfo, base types.Type) (ArgMode, error) {
	sig := f.Signature
	if sig.TypeParams().Len() > 0 {
		return ArgByValue, errors.New("generic functions are not supported")
	}

	if sig.Recv() != nil {
		return ArgByValue, errors.New("methods are not supported")
	}

	params := f.Params()
	if len(params) != 1 || sig.Variadic() {
		return ArgByValue, fmt.Errorf("takes %d parameters, want exactly 1", len(params))
	}

	if types.Identical(params[0], base) {
		return ArgByValue, nil
	}

	if ptr, ok := params[0].(*types.Pointer); ok && types.Identical(ptr.Elem(), base) {
		return ArgByPointer, nil
	}

	return ArgByValue, fmt.Errorf("takes %s, want %s or *%s", params[0], base, base)
}

// IsBool reports whether the underlying type of t is bool.
func IsBool(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsBoolean != 0
}

// IsString reports whether the underlying type of t is string.
func IsString(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

// IsError reports whether t is the predeclared error type.
func IsError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// ImplementsError reports whether t satisfies the error interface.
func ImplementsError(t types.Type) bool {
	return types.Implements(t, errorIface)
}

func classify(t types.Type) TypeKind {
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return TypeKindOther
	}

	info := b.Info()

	switch {
	case info&types.IsString != 0:
		return TypeKindString
	case info&types.IsNumeric != 0:
		return TypeKindNumeric
	case info&types.IsBoolean != 0:
		return TypeKindBool
	case b.Kind() == types.Invalid:
		return TypeKindUnknown
	default:
		return TypeKindOther
	}
}

// FuncNames lists the package-level functions declared by hand, sorted.
func (p *PackageInfo) FuncNames() []string {
	return p.scopeNames(func(obj types.Object) bool {
		_, ok := obj.(*types.Func)
		return ok
	})
}

// TypeNames lists the package-level types declared by hand, sorted.
func (p *PackageInfo) TypeNames() []string {
	return p.scopeNames(func(obj types.Object) bool {
		_, ok := obj.(*types.TypeName)
		return ok
	})
}

func (p *PackageInfo) scopeNames(keep func(types.Object) bool) []string {
	scope := p.Types.Scope()

	var out []string

	// Scope.Names is sorted.
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if keep(obj) && !p.inGeneratedFile(obj) {
			out = append(out, name)
		}
	}

	return out
}

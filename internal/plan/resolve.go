package plan

import (
	"errors"
	"fmt"
	"go/types"
	"strings"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/common"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/match"
	"newtype-generator/internal/schema"
)

// Resolver turns a spec file into a Plan.
type Resolver struct {
	spec *schema.File
	pkg  *analyze.PackageInfo
}

// NewResolver creates a Resolver. pkg may be nil to resolve offline.
func NewResolver(spec *schema.File, pkg *analyze.PackageInfo) *Resolver {
	return &Resolver{spec: spec, pkg: pkg}
}

// Resolve builds the plan. Configuration problems are reported through
// Plan.Diagnostics; the returned error is reserved for unusable input.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.spec == nil {
		return nil, errors.New("resolve: spec is nil")
	}

	p := &Plan{
		JSON:      r.spec.JSON,
		OutputDir: r.spec.Output,
	}
	if p.JSON == schema.JSONDefault {
		p.JSON = schema.JSONStd
	}

	if r.pkg != nil {
		p.PackageName = r.pkg.Name
		p.PackagePath = r.pkg.Path

		if p.OutputDir == "" {
			p.OutputDir = r.pkg.Dir
		}

		for _, msg := range r.pkg.Errors {
			p.Diagnostics.AddWarning("package_error", msg, "", "")
		}
	}

	p.Diagnostics.Merge(schema.Validate(r.spec))

	for i := range r.spec.Newtypes {
		n := &r.spec.Newtypes[i]
		if n.Name == "" || n.Base == "" {
			// Already reported by schema.Validate.
			continue
		}

		w := r.resolveNewtype(n, &p.Diagnostics)
		p.Wrappers = append(p.Wrappers, *w)
	}

	return p, nil
}

func (r *Resolver) resolveNewtype(n *schema.Newtype, diags *diagnostic.Diagnostics) *Wrapper {
	w := &Wrapper{
		Name:        n.Name,
		Attributes:  append([]string(nil), n.Attributes...),
		Constructor: n.ConstructorName(),
		Accessor:    n.AccessorName(),
		Manual:      n.Manual,
		Formats:     n.Formats,
		FileName:    n.FileName(),
	}

	w.Base = r.resolveBase(n, diags)
	w.Copy = r.resolveCopy(n, w.Base, diags)
	r.checkVisibility(n, diags)
	r.checkConflicts(n, diags)

	if check := schema.Normalize(n); check != nil && check.Failure.Form != schema.ErrorFormNone {
		w.Check = r.resolveCheck(n, check, w.Base, diags)
	}

	if n.Manual {
		r.checkManualConstructor(n, w.Base, diags)
	}

	if w.Has(schema.FormatText) && w.Base.GoType != nil && w.Base.Kind != analyze.TypeKindString {
		diags.AddError("text_requires_string",
			fmt.Sprintf("text format needs a base with underlying type string, %s is %s", n.Base, w.Base.Kind),
			n.Name, "formats")
	}

	w.Doc = docLines(n, w)

	return w
}

func (r *Resolver) resolveBase(n *schema.Newtype, diags *diagnostic.Diagnostics) analyze.TypeInfo {
	if r.pkg == nil {
		return offlineType(n.Base)
	}

	info, err := r.pkg.ResolveType(n.Base)
	if err != nil {
		diags.AddError("base_not_found", err.Error()+didYouMean(n.Base, r.pkg.TypeNames()), n.Name, "base")
		return offlineType(n.Base)
	}

	return *info
}

// resolveCopy rejects bases a wrapper could not keep unchanged after
// construction.
func (r *Resolver) resolveCopy(n *schema.Newtype, base analyze.TypeInfo, diags *diagnostic.Diagnostics) analyze.CopyMode {
	if r.pkg == nil || base.GoType == nil {
		return analyze.CopyNone
	}

	mode, err := analyze.CopyModeOf(base.GoType, r.pkg.Types)
	if err != nil {
		diags.AddError("base_not_value",
			fmt.Sprintf("base %s cannot be kept immutable: %v", n.Base, err), n.Name, "base")
	}

	return mode
}

// offlineType classifies builtin names and takes anything else as written.
func offlineType(expr string) analyze.TypeInfo {
	info := analyze.TypeInfo{Expr: expr}

	if obj, ok := types.Universe.Lookup(expr).(*types.TypeName); ok {
		info.GoType = obj.Type()

		switch {
		case analyze.IsString(obj.Type()):
			info.Kind = analyze.TypeKindString
		case analyze.IsBool(obj.Type()):
			info.Kind = analyze.TypeKindBool
		default:
			if b, ok := obj.Type().(*types.Basic); ok && b.Info()&types.IsNumeric != 0 {
				info.Kind = analyze.TypeKindNumeric
			} else {
				info.Kind = analyze.TypeKindOther
			}
		}
	}

	return info
}

func (r *Resolver) checkVisibility(n *schema.Newtype, diags *diagnostic.Diagnostics) {
	if r.pkg == nil || n.EffectiveVisibility() != schema.VisibilityScoped {
		return
	}

	if !common.IsInternalPath(r.pkg.Path) {
		diags.AddWarning("scoped_outside_internal",
			fmt.Sprintf("scoped type in %s is visible to every importer; move it below an internal/ directory", r.pkg.Path),
			n.Name, "visibility")
	}
}

// checkConflicts reports generated identifiers and methods that are already
// declared by hand.
func (r *Resolver) checkConflicts(n *schema.Newtype, diags *diagnostic.Diagnostics) {
	if r.pkg == nil {
		return
	}

	names := []struct{ field, ident string }{{"name", n.Name}}
	if !n.Manual {
		names = append(names, struct{ field, ident string }{"constructor", n.ConstructorName()})
	}

	if n.Message != "" {
		names = append(names, struct{ field, ident string }{"sentinel", n.SentinelName()})
	}

	for _, nm := range names {
		if pos, ok := r.pkg.DeclaredByHand(nm.ident); ok {
			diags.AddError("name_conflict",
				fmt.Sprintf("%s %q is already declared at %s", nm.field, nm.ident, pos), n.Name, nm.field)
		}
	}

	for i, method := range n.MethodNames() {
		field := "formats"
		if i == 0 {
			field = "accessor"
		}

		if pos, ok := r.pkg.MethodByHand(n.Name, method); ok {
			diags.AddError("name_conflict",
				fmt.Sprintf("method %s.%s is already declared at %s", n.Name, method, pos), n.Name, field)
		}
	}
}

func (r *Resolver) resolveCheck(
	n *schema.Newtype,
	check *schema.Check,
	base analyze.TypeInfo,
	diags *diagnostic.Diagnostics,
) *Check {
	c := &Check{
		Predicate: check.Predicate,
		Arg:       "&val",
	}

	if r.pkg != nil && base.GoType != nil {
		c.Arg = r.resolvePredicate(n, base, diags)
	}

	switch check.Failure.Form {
	case schema.ErrorFormMessage:
		c.Failure = Failure{
			Kind:     FailureSentinel,
			Sentinel: n.SentinelName(),
			Message:  check.Failure.Message,
		}
	case schema.ErrorFormDynamic:
		c.Failure = r.resolveErrorFunc(n, check.Failure, base, diags)
	}

	return c
}

func (r *Resolver) resolvePredicate(n *schema.Newtype, base analyze.TypeInfo, diags *diagnostic.Diagnostics) string {
	fn, ok := r.pkg.LookupFunc(n.Predicate)
	if !ok {
		diags.AddError("predicate_not_found",
			fmt.Sprintf("predicate %q is not a function of package %s%s",
				n.Predicate, r.pkg.Path, didYouMean(n.Predicate, r.pkg.FuncNames())),
			n.Name, "predicate")

		return "&val"
	}

	mode, err := analyze.MatchUnary(fn, base.GoType)
	if err != nil {
		diags.AddError("predicate_signature", fmt.Sprintf("predicate %s %v", fn.Name, err), n.Name, "predicate")
		return "&val"
	}

	if res := fn.Results(); len(res) != 1 || !analyze.IsBool(res[0]) {
		diags.AddError("predicate_signature",
			fmt.Sprintf("predicate %s must return exactly one bool", fn.Name), n.Name, "predicate")
	}

	return argExpr(mode)
}

func (r *Resolver) resolveErrorFunc(
	n *schema.Newtype,
	failure schema.Failure,
	base analyze.TypeInfo,
	diags *diagnostic.Diagnostics,
) Failure {
	f := Failure{Kind: FailureString, Func: failure.Func, Arg: "&val"}

	if r.pkg == nil || base.GoType == nil {
		// Offline: trust the declared error type.
		if t := strings.TrimSpace(failure.Type); t != "" && t != "string" {
			f.Kind = FailureError
		}

		return f
	}

	fn, ok := r.pkg.LookupFunc(failure.Func)
	if !ok {
		diags.AddError("error_func_not_found",
			fmt.Sprintf("error_func %q is not a function of package %s%s",
				failure.Func, r.pkg.Path, didYouMean(failure.Func, r.pkg.FuncNames())),
			n.Name, "error_func")

		return f
	}

	mode, err := analyze.MatchUnary(fn, base.GoType)
	if err != nil {
		diags.AddError("error_func_signature", fmt.Sprintf("error_func %s %v", fn.Name, err), n.Name, "error_func")
		return f
	}

	f.Arg = argExpr(mode)

	res := fn.Results()
	if len(res) != 1 {
		diags.AddError("error_func_signature",
			fmt.Sprintf("error_func %s must return exactly one value", fn.Name), n.Name, "error_func")

		return f
	}

	switch {
	case analyze.ImplementsError(res[0]):
		f.Kind = FailureError
	case analyze.IsString(res[0]):
		f.Kind = FailureString
		f.Convert = !types.Identical(res[0], types.Typ[types.String])
	default:
		diags.AddError("error_func_signature",
			fmt.Sprintf("error_func %s returns %s, want string or a type implementing error",
				fn.Name, r.pkg.TypeString(res[0])),
			n.Name, "error_func")
	}

	if declared := strings.ReplaceAll(failure.Type, " ", ""); declared != "" {
		if got := r.pkg.TypeString(res[0]); declared != strings.ReplaceAll(got, " ", "") {
			diags.AddError("error_type_mismatch",
				fmt.Sprintf("error_type %q does not match %s result %s", failure.Type, fn.Name, got),
				n.Name, "error_type")
		}
	}

	return f
}

func (r *Resolver) checkManualConstructor(n *schema.Newtype, base analyze.TypeInfo, diags *diagnostic.Diagnostics) {
	ctor := n.ConstructorName()

	if r.pkg == nil {
		diags.AddInfo("manual_constructor",
			fmt.Sprintf("%s must be written by hand: func %s(val %s) (%s, error)", ctor, ctor, n.Base, n.Name),
			n.Name, "manual")

		return
	}

	fn, ok := r.pkg.LookupFunc(ctor)
	if !ok {
		diags.AddWarning("manual_constructor_missing",
			fmt.Sprintf("%s is not written yet; the package will not compile until func %s(val %s) (%s, error) exists",
				ctor, ctor, base.Expr, n.Name),
			n.Name, "manual")

		return
	}

	params, results := fn.Params(), fn.Results()

	ok = len(params) == 1 && !fn.Signature.Variadic() && base.GoType != nil &&
		types.Identical(params[0], base.GoType) &&
		len(results) == 2 && analyze.IsError(results[1]) &&
		returnsWrapper(results[0], n.Name)

	if !ok {
		diags.AddError("manual_constructor_signature",
			fmt.Sprintf("%s has signature %s, want func(%s) (%s, error)",
				ctor, r.pkg.TypeString(fn.Signature), base.Expr, n.Name),
			n.Name, "manual")
	}
}

// returnsWrapper accepts the wrapper type itself, or an invalid type while the
// wrapper has not been generated yet.
func returnsWrapper(t types.Type, name string) bool {
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name() == name
	}

	b, ok := t.(*types.Basic)

	return ok && b.Kind() == types.Invalid
}

// didYouMean returns a hint naming the closest candidate, or "".
func didYouMean(name string, candidates []string) string {
	if hint, ok := match.Suggest(name, candidates, match.DefaultMinScore); ok {
		return fmt.Sprintf(" (did you mean %s?)", hint)
	}

	return ""
}

func argExpr(mode analyze.ArgMode) string {
	if mode == analyze.ArgByPointer {
		return "&val"
	}

	return "val"
}

// docLines returns the type's doc comment, defaulting to a one-line summary.
func docLines(n *schema.Newtype, w *Wrapper) []string {
	if doc := strings.TrimSpace(n.Doc); doc != "" {
		lines := strings.Split(doc, "\n")
		for i := range lines {
			lines[i] = strings.TrimRight(lines[i], " \t\r")
		}

		return lines
	}

	switch {
	case n.Manual:
		return []string{fmt.Sprintf("%s wraps a %s. Instances are created by %s.", n.Name, w.Base.Expr, w.Constructor)}
	case w.Check != nil:
		return []string{fmt.Sprintf("%s wraps a %s accepted by %s.", n.Name, w.Base.Expr, w.Check.Predicate)}
	default:
		return []string{fmt.Sprintf("%s wraps a %s.", n.Name, w.Base.Expr)}
	}
}

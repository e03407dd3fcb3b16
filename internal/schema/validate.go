package schema

import (
	"fmt"
	"slices"
	"strings"

	"newtype-generator/internal/common"
	"newtype-generator/internal/diagnostic"
)

// Validate validates a spec file structurally. Names, combinations of keys
// and formats are checked here; whether the referenced functions and types
// exist is checked later against the loaded package.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("spec_is_nil", "spec file is nil", "", "")
		return res
	}

	if f.Version != "" && f.Version != "1" {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported spec version %q", f.Version), "", "version")
	}

	if !f.JSON.IsValid() {
		res.AddError("unknown_json_codec",
			fmt.Sprintf("unknown json codec %q (expected 'std' or 'goccy')", f.JSON), "", "json")
	}

	if len(f.Newtypes) == 0 {
		res.AddWarning("no_newtypes", "spec declares no newtypes", "", "newtypes")
		return res
	}

	// Every generated identifier lives in the same package scope, and every
	// newtype gets its own file.
	declared := map[string]string{}
	files := map[string]string{}

	for i := range f.Newtypes {
		n := &f.Newtypes[i]

		label := n.Name
		if label == "" {
			label = fmt.Sprintf("newtypes[%d]", i)
		}

		validateNames(res, label, n, declared)
		validateFileName(res, label, n, files)
		validateVisibility(res, label, n)
		validateAttributes(res, label, n)
		validateErrorSpec(res, label, n)
		validateFormats(res, label, n)
	}

	return res
}

func validateNames(res *diagnostic.Diagnostics, label string, n *Newtype, declared map[string]string) {
	if n.Name == "" {
		res.AddError("missing_name", "newtype must specify name", label, "name")
		return
	}

	if n.Base == "" {
		res.AddError("missing_base", "newtype must specify base type", label, "base")
	}

	idents := []struct{ field, value string }{
		{"name", n.Name},
		{"constructor", n.ConstructorName()},
		{"accessor", n.AccessorName()},
	}
	if n.Message != "" {
		idents = append(idents, struct{ field, value string }{"sentinel", n.SentinelName()})
	}

	for _, id := range idents {
		if !common.IsIdentifier(id.value) || id.value == "_" {
			res.AddError("invalid_name", fmt.Sprintf("%s %q is not a valid Go identifier", id.field, id.value), label, id.field)
			continue
		}

		// The accessor is a method, so it only clashes within its own type.
		if id.field == "accessor" {
			if methods := n.MethodNames(); slices.Contains(methods[1:], id.value) {
				res.AddError("duplicate_name",
					fmt.Sprintf("accessor %q is also generated for one of the formats", id.value), label, "accessor")
			}

			continue
		}

		if owner, ok := declared[id.value]; ok {
			res.AddError("duplicate_name",
				fmt.Sprintf("%s %q is already declared by %s", id.field, id.value, owner), label, id.field)

			continue
		}

		declared[id.value] = label
	}
}

// validateFileName reports newtypes whose generated files would overwrite
// each other. Names differing only in case ("HTTPStatus", "HttpStatus") map
// to one file.
func validateFileName(res *diagnostic.Diagnostics, label string, n *Newtype, files map[string]string) {
	if !common.IsIdentifier(n.Name) {
		return
	}

	name := strings.ToLower(n.FileName())
	if owner, ok := files[name]; ok {
		res.AddError("duplicate_file",
			fmt.Sprintf("generated file %s is already written for %s", n.FileName(), owner), label, "name")

		return
	}

	files[name] = label
}

func validateVisibility(res *diagnostic.Diagnostics, label string, n *Newtype) {
	if !n.Visibility.IsValid() {
		res.AddError("invalid_visibility",
			fmt.Sprintf("invalid visibility %q (expected 'public', 'private' or 'scoped')", n.Visibility),
			label, "visibility")

		return
	}

	if n.Visibility == VisibilityDefault || n.Name == "" {
		return
	}

	if n.Visibility.Exported() != common.IsExported(n.Name) {
		res.AddError("visibility_mismatch",
			fmt.Sprintf("visibility %q does not match the case of name %q", n.Visibility, n.Name),
			label, "visibility")
	}
}

func validateAttributes(res *diagnostic.Diagnostics, label string, n *Newtype) {
	for _, attr := range n.Attributes {
		if !strings.HasPrefix(attr, "//") || strings.ContainsAny(attr, "\r\n") {
			res.AddError("invalid_attribute",
				fmt.Sprintf("attribute %q must be a single // comment line", attr), label, "attributes")
		}
	}
}

func validateErrorSpec(res *diagnostic.Diagnostics, label string, n *Newtype) {
	if n.Message != "" && n.ErrorFunc != "" {
		res.AddError("conflicting_error", "message and error_func are mutually exclusive", label, "error_func")
	}

	if n.ErrorType != "" && n.ErrorFunc == "" {
		res.AddError("error_type_without_func", "error_type requires error_func", label, "error_type")
	}

	if n.ErrorFunc != "" && !common.IsIdentifier(n.ErrorFunc) {
		res.AddError("invalid_name", fmt.Sprintf("error_func %q is not a valid Go identifier", n.ErrorFunc), label, "error_func")
	}

	if n.Predicate != "" && !common.IsIdentifier(n.Predicate) {
		res.AddError("invalid_name", fmt.Sprintf("predicate %q is not a valid Go identifier", n.Predicate), label, "predicate")
	}

	if n.Manual {
		if n.Predicate != "" || n.HasErrorSpec() {
			res.AddError("manual_with_check",
				"manual constructors own their validation; remove predicate, message and error_func",
				label, "manual")
		}

		return
	}

	switch {
	case n.Predicate != "" && !n.HasErrorSpec():
		res.AddError("missing_error",
			"predicate requires message or error_func (or manual: true to write the constructor by hand)",
			label, "predicate")
	case n.Predicate == "" && n.HasErrorSpec():
		res.AddError("error_without_predicate", "message/error_func require predicate", label, "predicate")
	case n.Predicate == "":
		res.AddInfo("identity_wrap", "no predicate: every base value is accepted", label, "predicate")
	}
}

func validateFormats(res *diagnostic.Diagnostics, label string, n *Newtype) {
	for _, f := range n.Formats {
		if !f.IsValid() {
			res.AddError("unknown_format",
				fmt.Sprintf("unknown format %q (expected 'json', 'yaml' or 'text')", f), label, "formats")
		}
	}

	for _, f := range common.Duplicates(n.Formats) {
		res.AddError("duplicate_format", fmt.Sprintf("format %q listed more than once", f), label, "formats")
	}
}

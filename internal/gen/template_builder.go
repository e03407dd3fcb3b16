package gen

import (
	"fmt"
	"sort"
	"strings"

	"newtype-generator/internal/common"
	"newtype-generator/internal/plan"
	"newtype-generator/internal/schema"
)

// templateData holds all data needed for the newtype template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	GenerateComments bool
	W                *plan.Wrapper
	// Recv is the receiver name of generated methods.
	Recv string
	// Sentinel and Message are set for the message form.
	Sentinel string
	Message  string
	// CtorDoc holds the constructor's doc lines.
	CtorDoc []string
	// Clone is the function copying slice and map bases, e.g. "slices.Clone".
	Clone string
	// Read is the expression handing the wrapped value out.
	Read string
}

// importSpec represents an import statement. An empty Path separates groups.
type importSpec struct {
	Alias string
	Path  string
}

// buildTemplateData constructs the template data for a wrapper.
func (g *Generator) buildTemplateData(p *plan.Plan, w *plan.Wrapper) *templateData {
	data := &templateData{
		PackageName:      p.PackageName,
		Filename:         w.FileName,
		GenerateComments: g.config.GenerateComments,
		W:                w,
		Recv:             common.ReceiverName(w.Name),
		CtorDoc:          constructorDoc(w),
	}

	data.Read = data.Recv + ".value"
	if pkg := w.Copy.ClonePkg(); pkg != "" {
		data.Clone = pkg + ".Clone"
		data.Read = data.Clone + "(" + data.Read + ")"
	}

	if w.Check != nil && w.Check.Failure.Kind == plan.FailureSentinel {
		data.Sentinel = w.Check.Failure.Sentinel
		data.Message = w.Check.Failure.Message
	}

	data.Imports = g.collectImports(p, w)

	return data
}

// collectImports returns standard library imports first, then a group
// separator, then everything else; each group sorted by path.
func (g *Generator) collectImports(p *plan.Plan, w *plan.Wrapper) []importSpec {
	imports := make(map[string]importSpec)

	add := func(alias, path string) {
		if path == "" || path == p.PackagePath {
			return
		}

		imports[path] = importSpec{Alias: alias, Path: path}
	}

	if w.Check != nil && w.Check.Failure.NeedsErrorsPkg() {
		add("", "errors")
	}

	if len(w.Formats) > 0 {
		add("", "fmt")
	}

	if w.Has(schema.FormatJSON) {
		if p.JSON == schema.JSONGoccy {
			add("json", p.JSON.ImportPath())
		} else {
			add("", p.JSON.ImportPath())
		}
	}

	if w.Has(schema.FormatYAML) {
		add("", "gopkg.in/yaml.v3")
	}

	add("", w.Copy.ClonePkg())
	add("", w.Base.ImportPath)

	var std, ext []importSpec

	for _, imp := range imports {
		if isStdlib(imp.Path) {
			std = append(std, imp)
		} else {
			ext = append(ext, imp)
		}
	}

	byPath := func(s []importSpec) {
		sort.Slice(s, func(i, j int) bool { return s[i].Path < s[j].Path })
	}
	byPath(std)
	byPath(ext)

	out := std
	if len(std) > 0 && len(ext) > 0 {
		out = append(out, importSpec{})
	}

	return append(out, ext...)
}

// isStdlib reports whether the first path element lacks a dot, which is how
// the go command tells standard library packages apart.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

func constructorDoc(w *plan.Wrapper) []string {
	switch {
	case w.Check == nil:
		return []string{
			fmt.Sprintf("%s returns val as a %s. Every %s is accepted and the error is always nil.",
				w.Constructor, w.Name, w.Base.Expr),
		}
	case w.Check.Failure.Kind == plan.FailureSentinel:
		return []string{
			fmt.Sprintf("%s returns val as a %s, or %s if %s rejects it.",
				w.Constructor, w.Name, w.Check.Failure.Sentinel, w.Check.Predicate),
		}
	default:
		return []string{
			fmt.Sprintf("%s returns val as a %s, or the error built by %s if %s rejects it.",
				w.Constructor, w.Name, w.Check.Failure.Func, w.Check.Predicate),
		}
	}
}

// commentLine renders one doc line, keeping blank lines as bare "//".
func commentLine(line string) string {
	if line == "" {
		return "//"
	}

	return "// " + line
}

package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
//
// NeedDeps keeps go/packages type-checking from source, so compile errors
// arrive as TypeError entries instead of failing the load.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

// ErrNoPackage is returned when a pattern matches no loadable package.
var ErrNoPackage = errors.New("no package matched")

// Analyzer loads the target package of a spec file.
type Analyzer struct {
	// Dir is the directory patterns are resolved against ("" = process cwd).
	Dir string
	// BuildFlags are passed to the build system (e.g. "-tags=integration").
	BuildFlags []string
}

// NewAnalyzer creates a new Analyzer resolving patterns against dir.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{Dir: dir}
}

// LoadPackage loads exactly one package matching pattern.
// Type errors are tolerated: errors inside files written by this tool are
// dropped, the rest are kept in PackageInfo.Errors for the caller to report.
func (a *Analyzer) LoadPackage(pattern string) (*PackageInfo, error) {
	cfg := &packages.Config{
		Mode:       LoadMode,
		Dir:        a.Dir,
		BuildFlags: a.BuildFlags,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", pattern, err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("%w: pattern %q matched %d packages, expected 1", ErrNoPackage, pattern, len(pkgs))
	}

	pkg := pkgs[0]

	// List errors are only fatal when they leave nothing to analyze; a
	// package that fails to compile is still loaded.
	if pkg.Types == nil || len(pkg.Syntax) == 0 {
		var msgs []string

		for _, e := range pkg.Errors {
			if e.Kind == packages.ListError {
				msgs = append(msgs, e.Msg)
			}
		}

		if len(msgs) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoPackage, strings.Join(msgs, "; "))
		}

		return nil, fmt.Errorf("%w: %s has no Go files", ErrNoPackage, pattern)
	}

	info := &PackageInfo{
		Path:           pkg.PkgPath,
		Name:           pkg.Name,
		Dir:            packageDir(pkg),
		Types:          pkg.Types,
		GeneratedFiles: generatedFiles(pkg),
		fset:           pkg.Fset,
		imports:        make(map[string]*types.Package),
		loaded:         make(map[string]*types.Package),
		methods:        handWrittenMethods(pkg),
		extra:          a.loadTypesOnly,
	}

	for _, imp := range pkg.Types.Imports() {
		info.imports[imp.Path()] = imp
	}

	for _, e := range pkg.Errors {
		if info.GeneratedFiles[filepath.Base(errorFile(e))] {
			continue
		}

		info.Errors = append(info.Errors, e.Error())
	}

	return info, nil
}

// loadTypesOnly loads the exported API of a package that the target package
// does not import yet.
func (a *Analyzer) loadTypesOnly(path string) (*types.Package, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedName | packages.NeedTypes,
		Dir:        a.Dir,
		BuildFlags: a.BuildFlags,
	}

	pkgs, err := packages.Load(cfg, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", path, err)
	}

	if len(pkgs) != 1 || pkgs[0].Types == nil || len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackage, path)
	}

	return pkgs[0].Types, nil
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}

	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}

	return ""
}

// generatedFiles returns the base names of files carrying GeneratedMarker
// before their package clause.
func generatedFiles(pkg *packages.Package) map[string]bool {
	out := make(map[string]bool)

	for _, file := range pkg.Syntax {
		if !isOwnGenerated(file) {
			continue
		}

		name := pkg.Fset.Position(file.Package).Filename
		out[filepath.Base(name)] = true
	}

	return out
}

// handWrittenMethods collects method declarations from the syntax of files
// this tool did not generate. Receivers whose type does not exist yet are
// included, which go/types would drop.
func handWrittenMethods(pkg *packages.Package) map[string]map[string]token.Position {
	out := make(map[string]map[string]token.Position)

	for _, file := range pkg.Syntax {
		if isOwnGenerated(file) {
			continue
		}

		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 {
				continue
			}

			recv := receiverTypeName(fn.Recv.List[0].Type)
			if recv == "" {
				continue
			}

			if out[recv] == nil {
				out[recv] = make(map[string]token.Position)
			}

			out[recv][fn.Name.Name] = pkg.Fset.Position(fn.Name.Pos())
		}
	}

	return out
}

// receiverTypeName returns "T" for receivers T, *T, T[P] and *T[P].
func receiverTypeName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.Ident:
			return e.Name
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		default:
			return ""
		}
	}
}

func isOwnGenerated(file *ast.File) bool {
	for _, cg := range file.Comments {
		if cg.Pos() >= file.Package {
			return false
		}

		for _, c := range cg.List {
			if strings.TrimSpace(c.Text) == GeneratedMarker {
				return true
			}
		}
	}

	return false
}

// errorFile extracts the file name of a "file:line:col" position.
func errorFile(e packages.Error) string {
	pos := e.Pos
	for range 2 {
		i := strings.LastIndex(pos, ":")
		if i < 0 {
			break
		}

		pos = pos[:i]
	}

	return pos
}

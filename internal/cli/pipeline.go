package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/plan"
	"newtype-generator/internal/schema"
)

const keyTags = "tags"

// loadPlan reads the spec at specPath and resolves it against its package.
// Relative package patterns and output directories are taken relative to
// the spec file. With offline set the package is not loaded and only the
// spec's own structure is checked.
func (a *app) loadPlan(specPath string, offline bool) (*plan.Plan, error) {
	spec, err := schema.LoadFile(specPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(specPath)

	if override := a.v.GetString(keyPackage); override != "" {
		spec.Package = override
	}

	if spec.Output != "" && !filepath.IsAbs(spec.Output) {
		spec.Output = filepath.Join(dir, spec.Output)
	}

	a.log.Debugw("spec loaded", "path", specPath, "package", spec.Package, "newtypes", len(spec.Newtypes))

	var pkg *analyze.PackageInfo

	if !offline {
		analyzer := analyze.NewAnalyzer(dir)
		if tags := a.v.GetStringSlice(keyTags); len(tags) > 0 {
			analyzer.BuildFlags = append(analyzer.BuildFlags, "-tags="+strings.Join(tags, ","))
		}

		pkg, err = analyzer.LoadPackage(spec.Package)
		if err != nil {
			return nil, err
		}

		a.log.Debugw("package loaded",
			"path", pkg.Path,
			"name", pkg.Name,
			"dir", pkg.Dir,
			"typeErrors", len(pkg.Errors),
			"generatedFiles", len(pkg.GeneratedFiles),
		)
	}

	p, err := plan.NewResolver(spec, pkg).Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", specPath, err)
	}

	a.log.Debugw("plan resolved",
		"wrappers", len(p.Wrappers),
		"errors", len(p.Diagnostics.Errors),
		"warnings", len(p.Diagnostics.Warnings),
	)

	return p, nil
}

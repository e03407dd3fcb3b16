package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"

	"newtype-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir receives debug output when formatting fails. Files are
	// written by WriteFiles, not by the Generator.
	OutputDir string
	// GenerateComments enables doc comments on generated functions and methods.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "percent_newtype.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// ErrPlanHasErrors is returned when asked to generate from a plan that
// carries error diagnostics.
var ErrPlanHasErrors = errors.New("plan has errors")

// Generate renders one file per wrapper of p.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	if p == nil {
		return nil, errors.New("generate: plan is nil")
	}

	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrPlanHasErrors, p.Diagnostics.Error())
	}

	if p.PackageName == "" {
		return nil, errors.New("generate: plan has no package name")
	}

	files := make([]GeneratedFile, 0, len(p.Wrappers))

	for i := range p.Wrappers {
		w := &p.Wrappers[i]

		file, err := g.generateWrapper(p, w)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", w.Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateWrapper(p *plan.Plan, w *plan.Wrapper) (*GeneratedFile, error) {
	data := g.buildTemplateData(p, w)

	var buf bytes.Buffer
	if err := newtypeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

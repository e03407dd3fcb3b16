package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"newtype-generator/internal/gen"
)

const (
	keyOut        = "out"
	keyDryRun     = "dry-run"
	keyPrune      = "prune"
	keyNoComments = "no-comments"
)

// ErrSpecHasErrors is returned when the spec does not pass its checks.
var ErrSpecHasErrors = errors.New("spec has errors")

func (a *app) newGenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate newtype code from a spec file",
		Long: `Load the spec file, check it against the target package and write one
<name>_newtype.go file per newtype. Nothing is written when any check fails.`,
		Args: cobra.NoArgs,
		RunE: a.runGen,
	}

	addSpecFlags(cmd)
	cmd.Flags().String(keyOut, "", "output directory (default: the spec's output key, then the package directory)")
	cmd.Flags().Bool(keyDryRun, false, "print generated code to stdout instead of writing files")
	cmd.Flags().Bool(keyPrune, false, "delete generated files of newtypes no longer in the spec")
	cmd.Flags().Bool(keyNoComments, false, "omit doc comments on generated functions")
	cmd.Flags().StringSlice(keyTags, nil, "build tags used when loading the package")

	return cmd
}

func (a *app) runGen(cmd *cobra.Command, _ []string) error {
	specPath := a.v.GetString(keySpec)

	p, err := a.loadPlan(specPath, false)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), &p.Diagnostics)

	for _, d := range p.Diagnostics.Infos {
		a.log.Infow(d.Message, "code", d.Code, "newtype", d.Newtype)
	}

	if p.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: %d error(s) in %s, nothing written", ErrSpecHasErrors, len(p.Diagnostics.Errors), specPath)
	}

	outDir := a.v.GetString(keyOut)
	if outDir == "" {
		outDir = p.OutputDir
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		OutputDir:        outDir,
		GenerateComments: !a.v.GetBool(keyNoComments),
	})

	files, err := generator.Generate(p)
	if err != nil {
		return err
	}

	if a.v.GetBool(keyDryRun) {
		for _, f := range files {
			fprintln(cmd.OutOrStdout(), "// "+filepath.Join(outDir, f.Filename))
			fprintln(cmd.OutOrStdout(), string(f.Content))
		}

		return nil
	}

	if err := gen.WriteFiles(files, outDir); err != nil {
		return err
	}

	for _, f := range files {
		a.log.Infow("wrote file", "path", filepath.Join(outDir, f.Filename), "bytes", len(f.Content))
	}

	if a.v.GetBool(keyPrune) {
		removed, err := gen.Prune(outDir, files)
		if err != nil {
			return err
		}

		for _, name := range removed {
			a.log.Infow("removed stale file", "path", filepath.Join(outDir, name))
		}
	}

	return nil
}

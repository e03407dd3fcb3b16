package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const keyOutput = "output"

func (a *app) newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a spec file without generating code",
		Long: `Run every check gen runs and print the diagnostics. The exit status is
non-zero when any error is found.`,
		Args: cobra.NoArgs,
		RunE: a.runCheck,
	}

	addSpecFlags(cmd)
	cmd.Flags().StringP(keyOutput, "o", outputTable, "output format: table or json")
	cmd.Flags().Bool(keyOffline, false, "check the spec's structure only, without loading the package")
	cmd.Flags().StringSlice(keyTags, nil, "build tags used when loading the package")

	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, _ []string) error {
	specPath := a.v.GetString(keySpec)

	p, err := a.loadPlan(specPath, a.v.GetBool(keyOffline))
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), p, a.v.GetString(keyOutput)); err != nil {
		return err
	}

	if p.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: %d error(s) in %s", ErrSpecHasErrors, len(p.Diagnostics.Errors), specPath)
	}

	return nil
}

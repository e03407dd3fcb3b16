package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"

	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/plan"
)

// Output formats of the check command.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// checkReport is the JSON shape of check output.
type checkReport struct {
	Package     string                  `json:"package,omitempty"`
	Newtypes    []string                `json:"newtypes"`
	Valid       bool                    `json:"valid"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
}

func newCheckReport(p *plan.Plan) checkReport {
	r := checkReport{
		Package:     p.PackagePath,
		Newtypes:    make([]string, 0, len(p.Wrappers)),
		Valid:       p.Diagnostics.IsValid(),
		Diagnostics: p.Diagnostics.All(),
	}

	for _, w := range p.Wrappers {
		r.Newtypes = append(r.Newtypes, w.Name)
	}

	return r
}

// writeReport renders the diagnostics of p in the given format.
func writeReport(w io.Writer, p *plan.Plan, format string) error {
	switch format {
	case outputJSON:
		out, err := json.MarshalIndent(newCheckReport(p), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}

		fprintln(w, string(out))

		return nil
	case outputTable:
		all := p.Diagnostics.All()
		if len(all) == 0 {
			fprintln(w, fmt.Sprintf("OK: %d newtype(s), no diagnostics", len(p.Wrappers)))
			return nil
		}

		table := tablewriter.NewWriter(w)
		table.Header("Severity", "Newtype", "Field", "Code", "Message")

		for _, d := range all {
			if err := table.Append(d.Severity.String(), d.Newtype, d.Field, d.Code, d.Message); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}

		fprintln(w, fmt.Sprintf("\n%d error(s), %d warning(s), %d info(s)",
			len(p.Diagnostics.Errors), len(p.Diagnostics.Warnings), len(p.Diagnostics.Infos)))

		return nil
	default:
		return fmt.Errorf("unknown output format %q, want %s or %s", format, outputTable, outputJSON)
	}
}

// printDiagnostics writes warnings and errors one per line.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		if d.Severity == diagnostic.SeverityInfo {
			continue
		}

		fprintln(w, d.Severity.String()+": "+d.String())
	}
}

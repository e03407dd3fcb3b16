package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newtype-generator/internal/analyze"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

const validSpec = `
newtypes:
  - name: Percent
    base: uint32
    predicate: isPercent
    message: percent must be in range 0-100
    formats: [json]
`

const invalidSpec = `
newtypes:
  - name: Percent
    base: uint32
    predicate: isPercent
`

// tempModule lays out a module with one package declaring isPercent.
func tempModule(t *testing.T, spec string) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/percent\n\ngo 1.24\n")
	writeFile(t, dir, "checks.go", "package percent\n\nfunc isPercent(v *uint32) bool { return *v <= 100 }\n")
	writeFile(t, dir, "newtypes.yaml", spec)

	return dir
}

func TestCheck_OfflineValid(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "newtypes.yaml", validSpec)

	stdout, _, err := run(t, "check", "--offline", "-c", spec)
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK: 1 newtype(s)")
}

func TestCheck_OfflineInvalidTable(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "newtypes.yaml", invalidSpec)

	stdout, _, err := run(t, "check", "--offline", "-c", spec)
	require.ErrorIs(t, err, ErrSpecHasErrors)
	assert.Contains(t, stdout, "missing_error")
	assert.Contains(t, stdout, "Percent")
	assert.Contains(t, stdout, "1 error(s)")
}

func TestCheck_OfflineJSON(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "newtypes.yaml", invalidSpec)

	stdout, _, err := run(t, "check", "--offline", "-c", spec, "--output", "json")
	require.Error(t, err)

	var report struct {
		Newtypes    []string `json:"newtypes"`
		Valid       bool     `json:"valid"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Code     string `json:"code"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, []string{"Percent"}, report.Newtypes)
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, "error", report.Diagnostics[0].Severity)
	assert.Equal(t, "missing_error", report.Diagnostics[0].Code)
}

func TestCheck_UnknownOutput(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "newtypes.yaml", validSpec)

	_, _, err := run(t, "check", "--offline", "-c", spec, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCheck_MissingSpec(t *testing.T) {
	_, _, err := run(t, "check", "--offline", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read spec file")
}

func TestCheck_EnvOverridesDefault(t *testing.T) {
	spec := writeFile(t, t.TempDir(), "newtypes.yaml", invalidSpec)
	t.Setenv("NEWTYPEGEN_CONFIG", spec)
	t.Setenv("NEWTYPEGEN_OFFLINE", "true")

	stdout, _, err := run(t, "check")
	require.Error(t, err)
	assert.Contains(t, stdout, "missing_error")
}

func TestCheck_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "newtypes.yaml", validSpec)
	cfg := writeFile(t, dir, "tool.yaml", "config: "+spec+"\noffline: true\noutput: json\n")

	stdout, _, err := run(t, "check", "--config-file", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"valid": true`)
}

func TestGen_WritesFiles(t *testing.T) {
	dir := tempModule(t, validSpec)

	_, stderr, err := run(t, "gen", "-c", filepath.Join(dir, "newtypes.yaml"))
	require.NoError(t, err, stderr)

	content, err := os.ReadFile(filepath.Join(dir, "percent_newtype.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), analyze.GeneratedMarker)
	assert.Contains(t, string(content), "package percent")
	assert.Contains(t, string(content), "if !isPercent(&val) {")
}

func TestGen_DryRun(t *testing.T) {
	dir := tempModule(t, validSpec)

	stdout, _, err := run(t, "gen", "--dry-run", "-c", filepath.Join(dir, "newtypes.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "func NewPercent(val uint32) (Percent, error)")

	_, err = os.Stat(filepath.Join(dir, "percent_newtype.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGen_ErrorsWriteNothing(t *testing.T) {
	dir := tempModule(t, invalidSpec)

	_, stderr, err := run(t, "gen", "-c", filepath.Join(dir, "newtypes.yaml"))
	require.ErrorIs(t, err, ErrSpecHasErrors)
	assert.Contains(t, stderr, "error: [Percent]")

	_, err = os.Stat(filepath.Join(dir, "percent_newtype.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGen_Prune(t *testing.T) {
	dir := tempModule(t, validSpec)
	stale := writeFile(t, dir, "ratio_newtype.go", analyze.GeneratedMarker+"\n\npackage percent\n\ntype Ratio struct{ value uint32 }\n")

	_, stderr, err := run(t, "gen", "--prune", "-c", filepath.Join(dir, "newtypes.yaml"))
	require.NoError(t, err, stderr)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestGen_HandWrittenCodeUsesTypeNotGeneratedYet(t *testing.T) {
	dir := tempModule(t, validSpec)
	writeFile(t, dir, "defaults.go", "package percent\n\nfunc half() (Percent, error) { return NewPercent(50) }\n")

	_, stderr, err := run(t, "gen", "-c", filepath.Join(dir, "newtypes.yaml"))
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, stderr, "package_error")

	_, err = os.Stat(filepath.Join(dir, "percent_newtype.go"))
	require.NoError(t, err)
}

func TestGen_StaleOutputDoesNotBlock(t *testing.T) {
	dir := tempModule(t, validSpec)
	stale := writeFile(t, dir, "ratio_newtype.go",
		analyze.GeneratedMarker+"\n\npackage percent\n\nfunc NewRatio() int { return removedThing() }\n")

	_, stderr, err := run(t, "gen", "--prune", "-c", filepath.Join(dir, "newtypes.yaml"))
	require.NoError(t, err, stderr)
	assert.NotContains(t, stderr, "removedThing")

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "percent_newtype.go"))
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "newtype-generator ")
}

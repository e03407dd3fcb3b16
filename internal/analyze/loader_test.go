package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	storePkg   = "newtype-generator/store"
	percentPkg = "newtype-generator/examples/percent"
)

func loadPackage(t *testing.T, pattern string) *PackageInfo {
	t.Helper()

	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	info, err := NewAnalyzer("").LoadPackage(pattern)
	require.NoError(t, err)
	require.NotNil(t, info)

	return info
}

func TestAnalyzer_LoadPackage(t *testing.T) {
	info := loadPackage(t, storePkg)

	assert.Equal(t, storePkg, info.Path)
	assert.Equal(t, "store", info.Name)
	assert.Equal(t, "store", filepath.Base(info.Dir))
	assert.Empty(t, info.Errors)
	assert.Empty(t, info.GeneratedFiles)
	assert.NotNil(t, info.Types.Scope().Lookup("Cents"))
}

func TestAnalyzer_LoadPackage_NoMatch(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	_, err := NewAnalyzer("").LoadPackage("newtype-generator/does/not/exist")
	require.ErrorIs(t, err, ErrNoPackage)
}

func TestAnalyzer_LoadPackage_SeveralMatches(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	_, err := NewAnalyzer("").LoadPackage("newtype-generator/internal/...")
	require.ErrorIs(t, err, ErrNoPackage)
	assert.Contains(t, err.Error(), "expected 1")
}

func TestAnalyzer_GeneratedFiles(t *testing.T) {
	info := loadPackage(t, percentPkg)

	assert.True(t, info.GeneratedFiles["percent_newtype.go"])
	assert.True(t, info.GeneratedFiles["slug_newtype.go"])
	assert.False(t, info.GeneratedFiles["checks.go"])
	assert.False(t, info.GeneratedFiles["legacy.go"])
	assert.Empty(t, info.Errors)
}

// writeModule creates a throwaway module holding the given files.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files["go.mod"] = "module example.com/tmp\n\ngo 1.24\n"

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func TestAnalyzer_StaleGeneratedFileErrorsAreDropped(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, map[string]string{
		"checks.go":           "package tmp\n\nfunc isOK(v int) bool { return v > 0 }\n",
		"old_newtype.go":      GeneratedMarker + "\n\npackage tmp\n\nfunc newOld() int { return removedHelper() }\n",
		"not_ours_newtype.go": "// Code generated by stringer. DO NOT EDIT.\n\npackage tmp\n\nconst fine = 1\n",
	})

	info, err := NewAnalyzer(dir).LoadPackage(".")
	require.NoError(t, err)

	assert.Equal(t, "tmp", info.Name)
	assert.Empty(t, info.Errors)
	assert.True(t, info.GeneratedFiles["old_newtype.go"])
	assert.False(t, info.GeneratedFiles["not_ours_newtype.go"])
}

func TestAnalyzer_HandWrittenErrorsAreKept(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, map[string]string{
		"checks.go": "package tmp\n\nfunc isOK(v int) bool { return missing(v) }\n",
	})

	info, err := NewAnalyzer(dir).LoadPackage(".")
	require.NoError(t, err)
	require.Len(t, info.Errors, 1)
	assert.Contains(t, info.Errors[0], "missing")
}

func TestAnalyzer_LoadsPackageReferringToUngeneratedType(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, map[string]string{
		"checks.go":  "package tmp\n\nfunc isOK(v int) bool { return v > 0 }\n",
		"legacy.go":  "package tmp\n\nfunc NewLegacy(v int) (Legacy, error) { return Legacy{}, nil }\n",
		"helpers.go": "package tmp\n\nfunc twice(v int) int { return v * 2 }\n",
	})

	info, err := NewAnalyzer(dir).LoadPackage(".")
	require.NoError(t, err)
	require.NotEmpty(t, info.Errors)
	assert.Contains(t, info.Errors[0], "Legacy")

	_, ok := info.LookupFunc("isOK")
	assert.True(t, ok)

	_, ok = info.LookupFunc("NewLegacy")
	assert.True(t, ok)
}

func TestIsOwnGenerated_MarkerAfterPackageClause(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := writeModule(t, map[string]string{
		"late.go": "package tmp\n\n" + GeneratedMarker + "\nvar x = 1\n",
	})

	info, err := NewAnalyzer(dir).LoadPackage(".")
	require.NoError(t, err)
	assert.False(t, info.GeneratedFiles["late.go"])
}

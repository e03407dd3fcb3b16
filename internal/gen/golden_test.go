package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/plan"
	"newtype-generator/internal/schema"
)

// TestGenerate_ExampleUpToDate regenerates examples/percent and compares the
// result with the committed files.
func TestGenerate_ExampleUpToDate(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir := filepath.Join("..", "..", "examples", "percent")

	spec, err := schema.LoadFile(filepath.Join(dir, "newtypes.yaml"))
	require.NoError(t, err)

	pkg, err := analyze.NewAnalyzer(dir).LoadPackage(".")
	require.NoError(t, err)

	p, err := plan.NewResolver(spec, pkg).Resolve()
	require.NoError(t, err)
	require.True(t, p.Diagnostics.IsValid(), "%v", p.Diagnostics.Error())
	assert.Empty(t, p.Diagnostics.Warnings)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, len(spec.Newtypes))

	for _, f := range files {
		want, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err, f.Filename)
		assert.Equal(t, string(want), string(f.Content), "%s is stale, run go generate ./examples/percent", f.Filename)
	}
}

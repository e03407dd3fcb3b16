package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes the template output that go/format rejected
// next to the intended output, so the broken line can be inspected. Failures
// are ignored by the caller.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	// The suffix keeps the file out of the package build.
	debugName := strings.TrimSuffix(filename, ".go") + ".go.unformatted"

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}

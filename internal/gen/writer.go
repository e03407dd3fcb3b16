package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"newtype-generator/internal/analyze"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// fileSuffix is shared by every file the generator writes.
const fileSuffix = "_newtype.go"

// ErrNotGenerated is returned instead of overwriting a file this tool did
// not write.
var ErrNotGenerated = errors.New("file exists and was not generated by newtype-generator")

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Nothing is written when a
// target exists without the generated marker or two files share a name.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	seen := make(map[string]bool, len(files))

	for _, file := range files {
		key := strings.ToLower(file.Filename)
		if seen[key] {
			return fmt.Errorf("writing file %s: generated twice", file.Filename)
		}

		seen[key] = true

		generated, err := isGenerated(filepath.Join(outputDir, file.Filename))
		if err != nil {
			return err
		}

		if !generated {
			return fmt.Errorf("%w: %s", ErrNotGenerated, filepath.Join(outputDir, file.Filename))
		}
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Prune removes files in dir that this tool generated earlier but that are
// not part of files anymore. Only files carrying the generated marker are
// touched. It returns the names of removed files.
func Prune(dir string, files []GeneratedFile) ([]string, error) {
	keep := make(map[string]bool, len(files))
	for _, f := range files {
		keep[f.Filename] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var removed []string

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || keep[name] || !strings.HasSuffix(name, fileSuffix) {
			continue
		}

		path := filepath.Join(dir, name)

		content, err := os.ReadFile(path)
		if err != nil {
			return removed, fmt.Errorf("reading %s: %w", name, err)
		}

		if !hasMarker(content) {
			continue
		}

		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", name, err)
		}

		removed = append(removed, name)
	}

	return removed, nil
}

// isGenerated reports whether path is missing or starts with the generated
// marker, i.e. whether it may be overwritten.
func isGenerated(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	return hasMarker(content), nil
}

func hasMarker(content []byte) bool {
	return bytes.HasPrefix(content, []byte(analyze.GeneratedMarker))
}

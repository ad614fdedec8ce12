// Package fsutil discovers and loads suite source files. The rest of the
// harness treats the result as an opaque ordered list of (name, content)
// pairs.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SuiteFile is one discovered suite source.
type SuiteFile struct {
	// Name is the suite name derived from the file location: the filename
	// stem for flat groups, the parent directory name for recursive ones.
	Name    string
	Path    string
	Content string
}

// LoadGroup discovers and reads one suite group. Flat groups take every
// .txt file directly in root; recursive groups walk root for files whose
// name equals filename exactly. Results are sorted by path for stable
// ordering.
func LoadGroup(root string, recursive bool, filename string) ([]SuiteFile, error) {
	var paths []string
	var err error
	if recursive {
		if filename == "" {
			return nil, fmt.Errorf("recursive suite group %s: filename must not be empty", root)
		}
		paths, err = findByName(root, filename)
	} else {
		paths, err = listByExtension(root, ".txt")
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	files := make([]SuiteFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read suite file %s: %w", path, err)
		}
		files = append(files, SuiteFile{
			Name:    suiteName(path, recursive),
			Path:    path,
			Content: string(content),
		})
	}
	return files, nil
}

// listByExtension returns the files directly in dir ending with ext.
func listByExtension(dir string, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list suite directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// findByName recursively walks root for files named exactly name.
func findByName(root string, name string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return paths, nil
}

func suiteName(path string, recursive bool) string {
	if recursive {
		return filepath.Base(filepath.Dir(path))
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package installer

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindExecutables walks root and returns every .exe file under it, sorted.
// Paths are joined with the platform separator, never a literal backslash.
func FindExecutables(root string) ([]string, error) {
	var executables []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".exe") {
			executables = append(executables, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(executables)
	return executables, nil
}

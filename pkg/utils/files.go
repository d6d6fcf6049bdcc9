package utils

import (
	"path/filepath"
	"strings"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// WithExt replaces the extension of path with ext (which includes the dot),
// or appends it when path has none.
func WithExt(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" {
		return path + ext
	}
	return strings.TrimSuffix(path, old) + ext
}

// FindConfig returns the first of names that exists in dir.
func FindConfig(dir string, exists func(string) bool, names ...string) (string, bool) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if exists(p) {
			return p, true
		}
	}
	return "", false
}

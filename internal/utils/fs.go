package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirPerm is the permission used for directories created by the pipeline
const DirPerm os.FileMode = 0755

// EnsureDir ensures the parent directory of a file path exists
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, DirPerm)
}

// ResolveDir returns the absolute form of dir, creating it if needed
func ResolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(ExpandPath(dir))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, DirPerm); err != nil {
		return "", fmt.Errorf("creating %s: %w", abs, err)
	}
	return abs, nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// IsHidden reports whether a directory entry name is a dotfile
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ListFiles returns the names of regular, non-hidden files in dir, sorted by name
func ListFiles(dir string) ([]string, error) {
	return listEntries(dir, func(e os.DirEntry) bool {
		return e.Type().IsRegular()
	})
}

// ListDirs returns the names of non-hidden subdirectories of dir, sorted by name
func ListDirs(dir string) ([]string, error) {
	return listEntries(dir, func(e os.DirEntry) bool {
		return e.IsDir()
	})
}

func listEntries(dir string, keep func(os.DirEntry) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if IsHidden(e.Name()) || !keep(e) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// HasFiles reports whether dir contains at least one regular file at any depth
func HasFiles(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

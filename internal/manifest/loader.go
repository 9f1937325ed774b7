package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader loads and validates manifest files
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadDir reads manifest.json from the root of an extracted archive
func (l *Loader) LoadDir(dir string) (*Manifest, error) {
	return l.Load(filepath.Join(dir, FileName))
}

// Load reads and parses a manifest file from the given path
func (l *Loader) Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return l.LoadFromBytes(data)
}

// LoadFromBytes parses and validates a manifest from raw bytes
func (l *Loader) LoadFromBytes(data []byte) (*Manifest, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

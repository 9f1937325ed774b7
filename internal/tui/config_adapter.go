package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/quantmind-br/extbundle/internal/config"
)

// ConfigValues holds form values that map to the Config struct.
// Numbers and lists are kept as strings while they are edited.
type ConfigValues struct {
	InputDir    string
	ArchivesDir string
	BundledDir  string
	OutputDir   string

	Limit       string
	MaxFileSize string

	Minify    bool
	Sourcemap bool
	Target    string
	ShimDir   string
	// Shims holds one "module=package" pair per line
	Shims string
	// Empty holds one module name per line
	Empty string

	LogLevel  string
	LogFormat string
	Progress  bool

	ReportPath string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		InputDir:    cfg.Paths.Input,
		ArchivesDir: cfg.Paths.Archives,
		BundledDir:  cfg.Paths.Bundled,
		OutputDir:   cfg.Paths.Output,

		Limit:       strconv.Itoa(cfg.Extract.Limit),
		MaxFileSize: cfg.Extract.MaxFileSize,

		Minify:    cfg.Bundle.Minify,
		Sourcemap: cfg.Bundle.Sourcemap,
		Target:    cfg.Bundle.Target,
		ShimDir:   cfg.Bundle.ShimDir,
		Shims:     formatShims(cfg.Bundle.Shims),
		Empty:     strings.Join(cfg.Bundle.Empty, "\n"),

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
		Progress:  cfg.Logging.Progress,

		ReportPath: cfg.Report.Path,
	}
}

// ToConfig converts ConfigValues back to a validated Config.
// Cleared shim and empty-module lists stay empty rather than reverting to
// the defaults.
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	limit, err := parseIntOrDefault(v.Limit, config.DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid limit: %w", err)
	}

	shims, err := parseShims(v.Shims)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Paths: config.PathsConfig{
			Input:    strings.TrimSpace(v.InputDir),
			Archives: strings.TrimSpace(v.ArchivesDir),
			Bundled:  strings.TrimSpace(v.BundledDir),
			Output:   strings.TrimSpace(v.OutputDir),
		},
		Extract: config.ExtractConfig{
			Limit:       limit,
			MaxFileSize: strings.TrimSpace(v.MaxFileSize),
		},
		Bundle: config.BundleConfig{
			Minify:    v.Minify,
			Sourcemap: v.Sourcemap,
			Target:    v.Target,
			Shims:     shims,
			Empty:     parseLines(v.Empty),
			ShimDir:   strings.TrimSpace(v.ShimDir),
		},
		Logging: config.LoggingConfig{
			Level:    v.LogLevel,
			Format:   v.LogFormat,
			Progress: v.Progress,
		},
		Report: config.ReportConfig{
			Path: strings.TrimSpace(v.ReportPath),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatShims(shims map[string]string) string {
	names := make([]string, 0, len(shims))
	for name := range shims {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = name + "=" + shims[name]
	}
	return strings.Join(lines, "\n")
}

func parseShims(s string) (map[string]string, error) {
	shims := make(map[string]string)
	for _, line := range parseLines(s) {
		name, pkg, ok := strings.Cut(line, "=")
		name, pkg = strings.TrimSpace(name), strings.TrimSpace(pkg)
		if !ok || name == "" || pkg == "" {
			return nil, fmt.Errorf("invalid shim %q: expected module=package", line)
		}
		shims[name] = pkg
	}
	return shims, nil
}

// parseLines splits s on newlines, dropping blanks
func parseLines(s string) []string {
	lines := []string{}
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

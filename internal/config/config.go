package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents the application configuration
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths" yaml:"paths"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Bundle  BundleConfig  `mapstructure:"bundle" yaml:"bundle"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Report  ReportConfig  `mapstructure:"report" yaml:"report"`
}

// PathsConfig contains the directory layout shared by every stage
type PathsConfig struct {
	Input    string `mapstructure:"input" yaml:"input"`
	Archives string `mapstructure:"archives" yaml:"archives"`
	Bundled  string `mapstructure:"bundled" yaml:"bundled"`
	Output   string `mapstructure:"output" yaml:"output"`
}

// ExtractConfig contains archive extraction settings
type ExtractConfig struct {
	Limit       int    `mapstructure:"limit" yaml:"limit"`
	MaxFileSize string `mapstructure:"max_file_size" yaml:"max_file_size"`
}

// BundleConfig contains esbuild settings
type BundleConfig struct {
	Minify    bool              `mapstructure:"minify" yaml:"minify"`
	Sourcemap bool              `mapstructure:"sourcemap" yaml:"sourcemap"`
	Target    string            `mapstructure:"target" yaml:"target"`
	Shims     map[string]string `mapstructure:"shims" yaml:"shims"`
	Empty     []string          `mapstructure:"empty" yaml:"empty"`
	ShimDir   string            `mapstructure:"shim_dir" yaml:"shim_dir"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Format   string `mapstructure:"format" yaml:"format"`
	Progress bool   `mapstructure:"progress" yaml:"progress"`
}

// ReportConfig contains run report settings
type ReportConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// Validate validates the configuration and fills in defaults for empty values
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		c.Paths.Input = DefaultInputDir
	}
	if c.Paths.Archives == "" {
		c.Paths.Archives = DefaultArchivesDir
	}
	if c.Paths.Bundled == "" {
		c.Paths.Bundled = DefaultBundledDir
	}
	if c.Paths.Output == "" {
		c.Paths.Output = DefaultOutputDir
	}
	if err := c.Paths.checkDistinct(); err != nil {
		return err
	}

	if c.Extract.Limit < 0 {
		return fmt.Errorf("invalid extract.limit: %d (must be >= 0)", c.Extract.Limit)
	}
	if c.Extract.MaxFileSize == "" {
		c.Extract.MaxFileSize = DefaultMaxFileSize
	} else if _, err := ParseSize(c.Extract.MaxFileSize); err != nil {
		return fmt.Errorf("invalid extract.max_file_size: %w", err)
	}

	if c.Bundle.Target == "" {
		c.Bundle.Target = DefaultTarget
	}
	if c.Bundle.Shims == nil {
		c.Bundle.Shims = DefaultShims()
	}
	if c.Bundle.Empty == nil {
		c.Bundle.Empty = append([]string(nil), DefaultEmptyModules...)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

// MaxFileSizeBytes returns the parsed extraction size limit
func (c *Config) MaxFileSizeBytes() int64 {
	n, err := ParseSize(c.Extract.MaxFileSize)
	if err != nil || n == 0 {
		n, _ = ParseSize(DefaultMaxFileSize)
	}
	return n
}

// checkDistinct rejects layouts where two stages share a directory
func (p PathsConfig) checkDistinct() error {
	named := []struct{ key, dir string }{
		{"paths.input", p.Input},
		{"paths.archives", p.Archives},
		{"paths.bundled", p.Bundled},
		{"paths.output", p.Output},
	}
	seen := make(map[string]string, len(named))
	for _, n := range named {
		clean := filepath.Clean(n.dir)
		if other, ok := seen[clean]; ok {
			return fmt.Errorf("%s and %s point to the same directory: %s", other, n.key, n.dir)
		}
		seen[clean] = n.key
	}
	return nil
}

func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var multiplier int64 = 1
	if strings.HasSuffix(s, "GB") {
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GB")
	} else if strings.HasSuffix(s, "MB") {
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MB")
	} else if strings.HasSuffix(s, "KB") {
		multiplier = 1024
		s = strings.TrimSuffix(s, "KB")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("no numeric value in size string")
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value: %w", err)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative size not allowed")
	}

	return n * multiplier, nil
}

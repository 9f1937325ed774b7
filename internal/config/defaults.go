package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	// Path defaults, relative to the working directory
	DefaultInputDir    = "./extensions"
	DefaultArchivesDir = "./archives"
	DefaultBundledDir  = "./bundled"
	DefaultOutputDir   = "./readytogo"

	// Extraction defaults
	DefaultLimit       = 0
	DefaultMaxFileSize = "512MB"

	// Bundle defaults
	DefaultTarget = "es2017"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
	DefaultProgress  = true
)

// defaultShims maps Node built-in modules to their browser implementations.
// Extension code often pulls these in through npm dependencies.
var defaultShims = map[string]string{
	"crypto":      "crypto-browserify",
	"http":        "stream-http",
	"https":       "https-browserify",
	"os":          "os-browserify/browser",
	"path":        "path-browserify",
	"stream":      "stream-browserify",
	"timers":      "timers-browserify",
	"tty":         "tty-browserify",
	"vm":          "vm-browserify",
	"zlib":        "browserify-zlib",
	"constants":   "constants-browserify",
	"domain":      "domain-browser",
	"process":     "process/browser",
	"querystring": "querystring-es3",
}

// DefaultEmptyModules are Node built-ins with no browser equivalent.
// They bundle as empty modules.
var DefaultEmptyModules = []string{
	"fs",
	"child_process",
	"net",
	"tls",
	"dgram",
	"dns",
	"module",
	"readline",
	"cluster",
	"worker_threads",
}

// DefaultShims returns a copy of the default shim table
func DefaultShims() map[string]string {
	shims := make(map[string]string, len(defaultShims))
	for k, v := range defaultShims {
		shims[k] = v
	}
	return shims
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".extbundle"
	}
	return filepath.Join(home, ".extbundle")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Input:    DefaultInputDir,
			Archives: DefaultArchivesDir,
			Bundled:  DefaultBundledDir,
			Output:   DefaultOutputDir,
		},
		Extract: ExtractConfig{
			Limit:       DefaultLimit,
			MaxFileSize: DefaultMaxFileSize,
		},
		Bundle: BundleConfig{
			Target: DefaultTarget,
			Shims:  DefaultShims(),
			Empty:  append([]string(nil), DefaultEmptyModules...),
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Progress: DefaultProgress,
		},
	}
}

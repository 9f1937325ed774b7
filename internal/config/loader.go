package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides (EXTBUNDLE_PATHS_INPUT, ...)
const EnvPrefix = "EXTBUNDLE"

// Load loads configuration from file, environment, and defaults
// Uses the global viper instance to access CLI flag bindings
func Load() (*Config, error) {
	return load(viper.GetViper(), "")
}

// LoadFile loads configuration from an explicit config file.
// An empty path falls back to the default search locations.
func LoadFile(path string) (*Config, error) {
	return load(viper.GetViper(), path)
}

// LoadWithViper loads configuration into a fresh viper instance and returns it
// alongside the config. Useful when flags are bound later or in tests.
func LoadWithViper(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	cfg, err := load(v, path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (EXTBUNDLE_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate and apply defaults for empty values
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Path defaults
	v.SetDefault("paths.input", DefaultInputDir)
	v.SetDefault("paths.archives", DefaultArchivesDir)
	v.SetDefault("paths.bundled", DefaultBundledDir)
	v.SetDefault("paths.output", DefaultOutputDir)

	// Extraction defaults
	v.SetDefault("extract.limit", DefaultLimit)
	v.SetDefault("extract.max_file_size", DefaultMaxFileSize)

	// Bundle defaults
	v.SetDefault("bundle.minify", false)
	v.SetDefault("bundle.sourcemap", false)
	v.SetDefault("bundle.target", DefaultTarget)
	v.SetDefault("bundle.shims", DefaultShims())
	v.SetDefault("bundle.empty", DefaultEmptyModules)
	v.SetDefault("bundle.shim_dir", "")

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.progress", DefaultProgress)

	// Report defaults
	v.SetDefault("report.path", "")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	dir := ConfigDir()
	return os.MkdirAll(dir, 0755)
}

// Save writes cfg as YAML to path, creating the parent directory.
// An empty path writes to ConfigFilePath.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigFilePath()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

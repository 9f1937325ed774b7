package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/extbundle/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Input:    "./crx",
			Archives: "./work/archives",
			Bundled:  "./work/bundled",
			Output:   "./done",
		},
		Extract: config.ExtractConfig{
			Limit:       12,
			MaxFileSize: "64MB",
		},
		Bundle: config.BundleConfig{
			Minify:    true,
			Sourcemap: true,
			Target:    "es2020",
			Shims:     map[string]string{"path": "path-browserify", "os": "os-browserify/browser"},
			Empty:     []string{"fs", "net"},
			ShimDir:   "/opt/shims/node_modules",
		},
		Logging: config.LoggingConfig{
			Level:    "debug",
			Format:   "json",
			Progress: true,
		},
		Report: config.ReportConfig{Path: "./report.yaml"},
	}

	values := FromConfig(cfg)

	assert.Equal(t, "./crx", values.InputDir)
	assert.Equal(t, "./work/archives", values.ArchivesDir)
	assert.Equal(t, "./work/bundled", values.BundledDir)
	assert.Equal(t, "./done", values.OutputDir)

	assert.Equal(t, "12", values.Limit)
	assert.Equal(t, "64MB", values.MaxFileSize)

	assert.True(t, values.Minify)
	assert.True(t, values.Sourcemap)
	assert.Equal(t, "es2020", values.Target)
	assert.Equal(t, "/opt/shims/node_modules", values.ShimDir)
	assert.Equal(t, "os=os-browserify/browser\npath=path-browserify", values.Shims)
	assert.Equal(t, "fs\nnet", values.Empty)

	assert.Equal(t, "debug", values.LogLevel)
	assert.Equal(t, "json", values.LogFormat)
	assert.True(t, values.Progress)

	assert.Equal(t, "./report.yaml", values.ReportPath)
}

func TestToConfig_RoundTrip(t *testing.T) {
	original := config.Default()
	original.Extract.Limit = 5
	original.Bundle.Minify = true
	original.Report.Path = "./r.yaml"

	cfg, err := FromConfig(original).ToConfig()
	require.NoError(t, err)
	assert.Equal(t, original, cfg)
}

func TestToConfig_EmptyFieldsUseDefaults(t *testing.T) {
	values := &ConfigValues{Shims: "path=path-browserify"}

	cfg, err := values.ToConfig()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultInputDir, cfg.Paths.Input)
	assert.Equal(t, config.DefaultOutputDir, cfg.Paths.Output)
	assert.Equal(t, config.DefaultLimit, cfg.Extract.Limit)
	assert.Equal(t, config.DefaultMaxFileSize, cfg.Extract.MaxFileSize)
	assert.Equal(t, config.DefaultTarget, cfg.Bundle.Target)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Logging.Format)
}

func TestToConfig_ClearedListsStayEmpty(t *testing.T) {
	values := FromConfig(config.Default())
	values.Shims = "\n  \n"
	values.Empty = ""

	cfg, err := values.ToConfig()
	require.NoError(t, err)
	assert.NotNil(t, cfg.Bundle.Shims)
	assert.Empty(t, cfg.Bundle.Shims)
	assert.NotNil(t, cfg.Bundle.Empty)
	assert.Empty(t, cfg.Bundle.Empty)
}

func TestToConfig_ParsesLists(t *testing.T) {
	values := FromConfig(config.Default())
	values.Shims = " path = path-browserify \n\nbuffer=buffer/"
	values.Empty = "fs\n  net  \n"

	cfg, err := values.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"path": "path-browserify", "buffer": "buffer/"}, cfg.Bundle.Shims)
	assert.Equal(t, []string{"fs", "net"}, cfg.Bundle.Empty)
}

func TestToConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ConfigValues)
	}{
		{"bad limit", func(v *ConfigValues) { v.Limit = "many" }},
		{"negative limit", func(v *ConfigValues) { v.Limit = "-1" }},
		{"bad size", func(v *ConfigValues) { v.MaxFileSize = "huge" }},
		{"bad shim", func(v *ConfigValues) { v.Shims = "path" }},
		{"shim without package", func(v *ConfigValues) { v.Shims = "path=" }},
		{"shared directory", func(v *ConfigValues) { v.BundledDir = v.ArchivesDir }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := FromConfig(config.Default())
			tt.modify(values)

			cfg, err := values.ToConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

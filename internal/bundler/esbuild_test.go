package bundler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/extbundle/internal/domain"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
}

func newJob(workDir, outDir, script string) domain.ScriptJob {
	return domain.ScriptJob{
		Archive:    "ext",
		Kind:       domain.ScriptBackground,
		Script:     script,
		WorkingDir: workDir,
		OutputPath: filepath.Join(outDir, "background_scripts", filepath.FromSlash(script)),
	}
}

func TestNewEsbuildBundler(t *testing.T) {
	tests := []struct {
		name    string
		opts    EsbuildOptions
		wantErr bool
	}{
		{"defaults", EsbuildOptions{}, false},
		{"known target", EsbuildOptions{Target: "ES2020"}, false},
		{"unknown target", EsbuildOptions{Target: "es1999"}, true},
		{
			"shimmed and emptied",
			EsbuildOptions{Shims: map[string]string{"fs": "memfs"}, Empty: []string{"fs"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewEsbuildBundler(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, b)
		})
	}
}

func TestTargets(t *testing.T) {
	names := Targets()
	require.Len(t, names, 10)
	assert.Equal(t, "es5", names[0])
	assert.Equal(t, "es2015", names[1])
	assert.Equal(t, "es2022", names[8])
	assert.Equal(t, "esnext", names[9])
}

func TestEsbuildBundler_Bundle(t *testing.T) {
	work := t.TempDir()
	out := t.TempDir()
	writeFiles(t, work, map[string]string{
		"js/bg.js": `
import { greet } from "./lib.js";
import * as fs from "fs";
import { join } from "path";
console.log(greet(), typeof fs, join("a", "b"));
`,
		"js/lib.js": `export function greet() { return "LIB_MARKER"; }`,
		"node_modules/path-browserify/package.json": `{"name": "path-browserify", "main": "index.js"}`,
		"node_modules/path-browserify/index.js":     `exports.join = function () { return "PATH_SHIM_MARKER"; };`,
	})

	b, err := NewEsbuildBundler(EsbuildOptions{
		Shims: map[string]string{"path": "path-browserify"},
		Empty: []string{"fs"},
	})
	require.NoError(t, err)

	job := newJob(work, out, "js/bg.js")
	outcome := b.Bundle(context.Background(), job)
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, "js/bg.js", outcome.Script)
	assert.Equal(t, job.OutputPath, outcome.OutputPath)

	data, err := os.ReadFile(job.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LIB_MARKER")
	assert.Contains(t, string(data), "PATH_SHIM_MARKER")
	assert.NotContains(t, string(data), "import ")
}

func TestEsbuildBundler_Bundle_Sourcemap(t *testing.T) {
	work := t.TempDir()
	out := t.TempDir()
	writeFiles(t, work, map[string]string{"bg.js": `console.log("hi");`})

	b, err := NewEsbuildBundler(EsbuildOptions{Sourcemap: true, Minify: true})
	require.NoError(t, err)

	job := newJob(work, out, "bg.js")
	outcome := b.Bundle(context.Background(), job)
	require.NoError(t, outcome.Err)

	assert.FileExists(t, job.OutputPath)
	assert.FileExists(t, job.OutputPath+".map")
}

func TestEsbuildBundler_Bundle_UnresolvedImport(t *testing.T) {
	work := t.TempDir()
	out := t.TempDir()
	writeFiles(t, work, map[string]string{"bg.js": `import "./missing.js";`})

	b, err := NewEsbuildBundler(EsbuildOptions{})
	require.NoError(t, err)

	job := newJob(work, out, "bg.js")
	outcome := b.Bundle(context.Background(), job)

	require.Error(t, outcome.Err)
	assert.ErrorIs(t, outcome.Err, domain.ErrBundleFailed)
	assert.Contains(t, outcome.Err.Error(), "missing.js")
	assert.NoFileExists(t, job.OutputPath)
}

func TestEsbuildBundler_Bundle_MissingEntry(t *testing.T) {
	b, err := NewEsbuildBundler(EsbuildOptions{})
	require.NoError(t, err)

	outcome := b.Bundle(context.Background(), newJob(t.TempDir(), t.TempDir(), "nope.js"))

	var scriptErr *domain.ScriptError
	require.ErrorAs(t, outcome.Err, &scriptErr)
	assert.Equal(t, "nope.js", scriptErr.Script)
	assert.NotEmpty(t, scriptErr.Messages)
}

func TestEsbuildBundler_Bundle_Canceled(t *testing.T) {
	b, err := NewEsbuildBundler(EsbuildOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := b.Bundle(ctx, newJob(t.TempDir(), t.TempDir(), "bg.js"))
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}

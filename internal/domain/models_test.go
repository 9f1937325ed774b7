package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchiveIDFromPath(t *testing.T) {
	tests := []struct {
		path string
		want ArchiveID
	}{
		{"extensions/ublock.xpi", "ublock"},
		{"/abs/path/dark-reader-4.9.zip", "dark-reader-4.9"},
		{"noext", "noext"},
		{"archive.tar.gz", "archive.tar"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ArchiveIDFromPath(tt.path))
		})
	}
}

func TestScriptKind_OutputFolder(t *testing.T) {
	assert.Equal(t, "background_scripts", ScriptBackground.OutputFolder())
	assert.Equal(t, "content_scripts", ScriptContent.OutputFolder())
}

func TestBundleResult_Succeeded(t *testing.T) {
	ok := ScriptOutcome{Script: "bg.js", Kind: ScriptBackground}
	bad := ScriptOutcome{Script: "cs.js", Kind: ScriptContent, Err: errors.New("boom")}

	t.Run("all scripts succeeded", func(t *testing.T) {
		r := BundleResult{ID: "a", Scripts: []ScriptOutcome{ok, ok}}
		assert.True(t, r.Succeeded())
		assert.Empty(t, r.FailedScripts())
	})

	t.Run("one failing script fails the archive", func(t *testing.T) {
		r := BundleResult{ID: "a", Scripts: []ScriptOutcome{ok, bad, ok}}
		assert.False(t, r.Succeeded())
		failed := r.FailedScripts()
		assert.Len(t, failed, 1)
		assert.Equal(t, "cs.js", failed[0].Script)
	})

	t.Run("skipped archive", func(t *testing.T) {
		r := BundleResult{ID: "a", Skipped: true, Reason: ReasonManifestNotFound}
		assert.False(t, r.Succeeded())
	})

	t.Run("no scripts", func(t *testing.T) {
		assert.False(t, BundleResult{ID: "a"}.Succeeded())
	})
}

func TestBundleReport_Add(t *testing.T) {
	ok := BundleResult{ID: "a", Scripts: []ScriptOutcome{{Script: "bg.js"}}}
	skipped := BundleResult{ID: "b", Skipped: true, Reason: ReasonMalformedManifest}

	var r BundleReport
	r.Add(ok)
	r.Add(skipped)
	r.Add(ok)

	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, []ArchiveID{"a"}, r.Successful)
	assert.Len(t, r.Results, 3)
}

func TestExtractResult_IDs(t *testing.T) {
	r := &ExtractResult{Extracted: []ExtractedArchive{{ID: "x"}, {ID: "y"}}}
	assert.Equal(t, []ArchiveID{"x", "y"}, r.IDs())
	assert.Empty(t, (&ExtractResult{}).IDs())
}

package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// ArchiveID is the basename of an archive file (filename minus extension).
// It names the archive's directory in every stage of the pipeline.
type ArchiveID string

// String returns the identifier as a plain string
func (id ArchiveID) String() string {
	return string(id)
}

// ArchiveIDFromPath derives an ArchiveID from an archive file path
func ArchiveIDFromPath(path string) ArchiveID {
	name := filepath.Base(path)
	return ArchiveID(strings.TrimSuffix(name, filepath.Ext(name)))
}

// Archive is an input archive file
type Archive struct {
	ID   ArchiveID
	Path string
}

// ExtractedArchive is an archive that was unpacked into Dir
type ExtractedArchive struct {
	ID  ArchiveID
	Dir string
}

// ArchiveFailure records a recoverable per-archive failure
type ArchiveFailure struct {
	ID   ArchiveID
	Path string
	Err  error
}

// ExtractResult is the output of the extraction stage
type ExtractResult struct {
	Extracted []ExtractedArchive
	Failed    []ArchiveFailure
	Total     int
}

// IDs returns the identifiers of every extracted archive, in order
func (r *ExtractResult) IDs() []ArchiveID {
	ids := make([]ArchiveID, 0, len(r.Extracted))
	for _, e := range r.Extracted {
		ids = append(ids, e.ID)
	}
	return ids
}

// ScriptKind classifies a manifest script
type ScriptKind string

const (
	// ScriptBackground is a script declared in background.scripts
	ScriptBackground ScriptKind = "background"
	// ScriptContent is a script declared in content_scripts[].js
	ScriptContent ScriptKind = "content"
)

// OutputFolder returns the per-archive subfolder holding bundles of this kind
func (k ScriptKind) OutputFolder() string {
	switch k {
	case ScriptContent:
		return "content_scripts"
	default:
		return "background_scripts"
	}
}

// SkipReason explains why an archive was not bundled
type SkipReason string

const (
	ReasonManifestNotFound  SkipReason = "manifest not found"
	ReasonMalformedManifest SkipReason = "malformed manifest"
	ReasonMissingBackground SkipReason = "missing background script"
	ReasonBundleFailed      SkipReason = "failed to bundle"
)

// ScriptJob describes a single bundling call
type ScriptJob struct {
	Archive    ArchiveID
	Kind       ScriptKind
	Script     string // path as declared in the manifest
	WorkingDir string // extracted archive directory
	OutputPath string
}

// ScriptOutcome is the result of bundling one script
type ScriptOutcome struct {
	Script     string
	Kind       ScriptKind
	OutputPath string
	Warnings   []string
	Err        error
}

// Succeeded reports whether the script bundled without errors
func (o ScriptOutcome) Succeeded() bool {
	return o.Err == nil
}

// BundleResult is the per-archive outcome of the bundling stage
type BundleResult struct {
	ID        ArchiveID
	Dir       string
	OutputDir string
	Scripts   []ScriptOutcome
	Skipped   bool
	Reason    SkipReason
	Err       error
}

// Succeeded is true when the archive was not skipped and every script bundled
func (r BundleResult) Succeeded() bool {
	if r.Skipped || len(r.Scripts) == 0 {
		return false
	}
	for _, s := range r.Scripts {
		if !s.Succeeded() {
			return false
		}
	}
	return true
}

// FailedScripts returns the outcomes of scripts that failed to bundle
func (r BundleResult) FailedScripts() []ScriptOutcome {
	var failed []ScriptOutcome
	for _, s := range r.Scripts {
		if !s.Succeeded() {
			failed = append(failed, s)
		}
	}
	return failed
}

// BundleReport is the output of the bundling stage
type BundleReport struct {
	Results    []BundleResult
	Successful []ArchiveID
	Skipped    int
	Total      int
}

// Add records a result, keeping Successful free of duplicates
func (r *BundleReport) Add(result BundleResult) {
	r.Results = append(r.Results, result)
	r.Total++
	if !result.Succeeded() {
		r.Skipped++
		return
	}
	for _, id := range r.Successful {
		if id == result.ID {
			return
		}
	}
	r.Successful = append(r.Successful, result.ID)
}

// CopyResult is the output of the copy stage
type CopyResult struct {
	Copied []ArchiveID
	Failed []ArchiveFailure
}

// RunReport summarizes a full pipeline run
type RunReport struct {
	ID          string
	StartedAt   time.Time
	Duration    time.Duration
	Extract     *ExtractResult
	Bundle      *BundleReport
	Copy        *CopyResult
	StageErrors []*StageError
}

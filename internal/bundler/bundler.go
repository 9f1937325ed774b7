// Package bundler runs the bundling stage: it reads each extracted archive's
// manifest and bundles every declared background and content script.
package bundler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/manifest"
	"github.com/quantmind-br/extbundle/internal/utils"
)

// Bundler bundles the scripts of extracted archives into an output directory
type Bundler struct {
	scripts   domain.ScriptBundler
	loader    *manifest.Loader
	outputDir string
	logger    *utils.Logger
	progress  utils.ProgressOptions
}

// Options contains options for creating a Bundler
type Options struct {
	domain.CommonOptions
	// Scripts bundles a single entry script
	Scripts   domain.ScriptBundler
	OutputDir string
	Logger    *utils.Logger
	Progress  utils.ProgressOptions
}

// New creates a new Bundler
func New(opts Options) (*Bundler, error) {
	if opts.Scripts == nil {
		return nil, fmt.Errorf("script bundler is required")
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	outputDir, err := filepath.Abs(utils.ExpandPath(opts.OutputDir))
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Bundler{
		scripts:   opts.Scripts,
		loader:    manifest.NewLoader(),
		outputDir: outputDir,
		logger:    logger.WithComponent("bundler"),
		progress:  opts.Progress,
	}, nil
}

// OutputDir returns the absolute bundle output directory
func (b *Bundler) OutputDir() string {
	return b.outputDir
}

// BundleDir bundles every archive directory found under archivesRoot
func (b *Bundler) BundleDir(ctx context.Context, archivesRoot string) (*domain.BundleReport, error) {
	root, err := filepath.Abs(utils.ExpandPath(archivesRoot))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrListArchives, archivesRoot, err)
	}

	names, err := utils.ListDirs(root)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrListArchives, archivesRoot, err)
	}

	archives := make([]domain.ExtractedArchive, 0, len(names))
	for _, name := range names {
		archives = append(archives, domain.ExtractedArchive{
			ID:  domain.ArchiveID(name),
			Dir: filepath.Join(root, name),
		})
	}

	return b.BundleAll(ctx, archives), nil
}

// BundleAll bundles each archive in order. An archive is successful only if
// every script in its manifest bundles. Cancellation stops before the next
// archive and the report covers the archives processed so far.
func (b *Bundler) BundleAll(ctx context.Context, archives []domain.ExtractedArchive) *domain.BundleReport {
	report := &domain.BundleReport{}

	bar := utils.NewProgressBarWithOptions(len(archives), utils.DescBundling, b.progress)
	defer func() { _ = bar.Finish() }()

	for _, archive := range archives {
		if ctx.Err() != nil {
			break
		}

		result := b.bundleArchive(ctx, archive)
		report.Add(result)
		_ = bar.Add(1)

		log := b.logger.WithArchive(archive.ID.String())
		if result.Succeeded() {
			log.Debug().Int("scripts", len(result.Scripts)).Msg("Archive bundled")
			continue
		}

		event := log.Warn().Str("reason", string(result.Reason))
		if result.Err != nil {
			event = event.Err(result.Err)
		}
		event.Msg("Skipping archive")
	}

	b.logger.Info().Msgf("Skipped %d archives out of %d", report.Skipped, report.Total)
	return report
}

func (b *Bundler) bundleArchive(ctx context.Context, archive domain.ExtractedArchive) domain.BundleResult {
	result := domain.BundleResult{
		ID:        archive.ID,
		Dir:       archive.Dir,
		OutputDir: filepath.Join(b.outputDir, archive.ID.String()),
	}

	m, err := b.loader.LoadDir(archive.Dir)
	if err != nil {
		return skip(result, reasonFor(err), err)
	}

	workDir, err := filepath.Abs(archive.Dir)
	if err != nil {
		return skip(result, domain.ReasonBundleFailed, err)
	}

	// Stale output from an earlier run must not survive a failure
	if err := os.RemoveAll(result.OutputDir); err != nil {
		return skip(result, domain.ReasonBundleFailed, err)
	}

	log := b.logger.WithArchive(archive.ID.String())
	for _, task := range b.tasks(archive.ID, workDir, result.OutputDir, m) {
		job := task.job
		outcome := domain.ScriptOutcome{Script: job.Script, Kind: job.Kind, Err: task.err}
		if task.err == nil {
			outcome = b.scripts.Bundle(ctx, job)
		}
		for _, w := range outcome.Warnings {
			log.Debug().Str("script", job.Script).Msg(w)
		}
		if !outcome.Succeeded() {
			log.Warn().Str("script", job.Script).Str("kind", string(job.Kind)).Err(outcome.Err).Msg("Script failed to bundle")
		}
		result.Scripts = append(result.Scripts, outcome)
	}

	if result.Succeeded() {
		return result
	}

	var errs []error
	for _, failed := range result.FailedScripts() {
		errs = append(errs, failed.Err)
	}
	if len(errs) == 0 {
		errs = append(errs, domain.ErrNoScripts)
	}
	if err := os.RemoveAll(result.OutputDir); err != nil {
		log.Warn().Err(err).Msg("Failed to remove partial bundle output")
	}
	return skip(result, domain.ReasonBundleFailed, errors.Join(errs...))
}

// scriptTask is a job ready for the script bundler, or the reason the
// script cannot be bundled at all
type scriptTask struct {
	job domain.ScriptJob
	err error
}

// tasks builds one task per script: background scripts first, then content
// scripts, each in manifest order.
func (b *Bundler) tasks(id domain.ArchiveID, workDir, outputDir string, m *manifest.Manifest) []scriptTask {
	declared := []struct {
		kind    domain.ScriptKind
		scripts []string
	}{
		{domain.ScriptBackground, m.BackgroundScripts()},
		{domain.ScriptContent, m.ContentScriptPaths()},
	}

	tasks := make([]scriptTask, 0, m.ScriptCount())
	for _, d := range declared {
		for _, script := range d.scripts {
			rel, err := cleanScriptPath(script)
			if err != nil {
				tasks = append(tasks, scriptTask{
					job: domain.ScriptJob{Archive: id, Kind: d.kind, Script: script},
					err: err,
				})
				continue
			}
			tasks = append(tasks, scriptTask{job: domain.ScriptJob{
				Archive:    id,
				Kind:       d.kind,
				Script:     rel,
				WorkingDir: workDir,
				OutputPath: filepath.Join(outputDir, d.kind.OutputFolder(), filepath.FromSlash(rel)),
			}})
		}
	}
	return tasks
}

// cleanScriptPath turns a manifest script reference into a slash-separated
// path relative to the archive root. A leading slash means the archive root;
// a path that resolves outside the archive is rejected.
func cleanScriptPath(script string) (string, error) {
	p := strings.TrimLeft(strings.ReplaceAll(script, `\`, "/"), "/")
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsafeScriptPath, script)
	}
	return p, nil
}

func reasonFor(err error) domain.SkipReason {
	switch {
	case errors.Is(err, manifest.ErrFileNotFound):
		return domain.ReasonManifestNotFound
	case errors.Is(err, manifest.ErrMissingBackground):
		return domain.ReasonMissingBackground
	default:
		return domain.ReasonMalformedManifest
	}
}

func skip(result domain.BundleResult, reason domain.SkipReason, err error) domain.BundleResult {
	result.Skipped = true
	result.Reason = reason
	result.Err = err
	return result
}

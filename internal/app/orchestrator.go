package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quantmind-br/extbundle/internal/bundler"
	"github.com/quantmind-br/extbundle/internal/config"
	"github.com/quantmind-br/extbundle/internal/copier"
	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/extractor"
	"github.com/quantmind-br/extbundle/internal/utils"
)

// Orchestrator builds the extract, bundle and copy stages from config and
// runs them
type Orchestrator struct {
	config    *config.Config
	logger    *utils.Logger
	extractor *extractor.Extractor
	bundler   *bundler.Bundler
	copier    *copier.Copier
	clean     bool
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	// Logger overrides the logger built from Config.Logging
	Logger *utils.Logger
	// Collaborator overrides, used by tests
	Archiver domain.ArchiveExtractor
	Scripts  domain.ScriptBundler
	Tree     domain.TreeCopier
	Progress *utils.ProgressOptions
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config

	// Validate config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := "info"
		logFormat := "pretty"
		if cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logFormat = cfg.Logging.Format
		}
		if opts.Verbose {
			logLevel = "debug"
		}

		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  logFormat,
			Verbose: opts.Verbose,
		})
	}

	// no bars under debug logging
	debug := opts.Verbose || strings.EqualFold(cfg.Logging.Level, "debug")
	progress := utils.ProgressOptions{Disabled: !cfg.Logging.Progress || debug}
	if opts.Progress != nil {
		progress = *opts.Progress
	}

	limit := cfg.Extract.Limit
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	scripts := opts.Scripts
	if scripts == nil {
		var nodePaths []string
		if cfg.Bundle.ShimDir != "" {
			nodePaths = []string{utils.ExpandPath(cfg.Bundle.ShimDir)}
		}
		esb, err := bundler.NewEsbuildBundler(bundler.EsbuildOptions{
			Minify:    cfg.Bundle.Minify,
			Sourcemap: cfg.Bundle.Sourcemap,
			Target:    cfg.Bundle.Target,
			Shims:     cfg.Bundle.Shims,
			Empty:     cfg.Bundle.Empty,
			NodePaths: nodePaths,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create bundler: %w", err)
		}
		scripts = esb
	}

	b, err := bundler.New(bundler.Options{
		CommonOptions: opts.CommonOptions,
		Scripts:       scripts,
		OutputDir:     cfg.Paths.Bundled,
		Logger:        logger,
		Progress:      progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bundler: %w", err)
	}

	extractOpts := extractor.Options{
		CommonOptions: opts.CommonOptions,
		Archiver:      opts.Archiver,
		MaxFileSize:   cfg.MaxFileSizeBytes(),
		Logger:        logger,
		Progress:      progress,
	}
	extractOpts.Limit = limit

	return &Orchestrator{
		config:    cfg,
		logger:    logger,
		extractor: extractor.New(extractOpts),
		bundler:   b,
		copier: copier.New(copier.Options{
			CommonOptions: opts.CommonOptions,
			Tree:          opts.Tree,
			Logger:        logger,
			Progress:      progress,
		}),
		clean: opts.Clean,
	}, nil
}

// Pipeline returns a pipeline with the named stages. No names means the
// full extract, bundle, copy pipeline.
func (o *Orchestrator) Pipeline(names ...string) (*Pipeline, error) {
	if len(names) == 0 {
		names = []string{StageExtract, StageBundle, StageCopy}
	}

	stages := make([]Stage, 0, len(names))
	for _, name := range names {
		switch name {
		case StageExtract:
			stages = append(stages, ExtractStage(o.extractor))
		case StageBundle:
			stages = append(stages, BundleStage(o.bundler))
		case StageCopy:
			stages = append(stages, CopyStage(o.copier))
		default:
			return nil, fmt.Errorf("unknown stage: %s", name)
		}
	}
	return NewPipeline(o.logger, stages...), nil
}

// Run runs the full pipeline
func (o *Orchestrator) Run(ctx context.Context) (*domain.RunReport, error) {
	return o.RunStages(ctx)
}

// RunStages runs the named stages in order. The returned error joins the
// StageErrors of every aborted stage; the report is always returned.
func (o *Orchestrator) RunStages(ctx context.Context, names ...string) (*domain.RunReport, error) {
	pipeline, err := o.Pipeline(names...)
	if err != nil {
		return nil, err
	}

	report := &domain.RunReport{ID: uuid.NewString(), StartedAt: time.Now()}
	state := &State{Paths: o.config.Paths}

	o.logger.Info().
		Str("run", report.ID).
		Strs("stages", pipeline.Stages()).
		Str("input", o.config.Paths.Input).
		Str("output", o.config.Paths.Output).
		Msg("Starting extension bundling")

	if o.clean {
		o.cleanOutputs(pipeline.Stages())
	}

	report.StageErrors = pipeline.Run(ctx, state)

	report.Extract = state.Extract
	report.Bundle = state.Bundle
	report.Copy = state.Copy
	report.Duration = time.Since(report.StartedAt)

	if ctx.Err() != nil {
		o.logger.Warn().Msg("Run cancelled")
	}

	o.logSummary(report)

	if path := o.config.Report.Path; path != "" {
		if err := WriteReport(path, report); err != nil {
			o.logger.Warn().Err(err).Str("path", path).Msg("Failed to write run report")
		} else {
			o.logger.Info().Str("path", path).Msg("Run report written")
		}
	}

	return report, joinStageErrors(report.StageErrors)
}

// cleanOutputs removes the directories the given stages write to
func (o *Orchestrator) cleanOutputs(stages []string) {
	owned := map[string]string{
		StageExtract: o.config.Paths.Archives,
		StageBundle:  o.config.Paths.Bundled,
		StageCopy:    o.config.Paths.Output,
	}
	for _, stage := range stages {
		dir := utils.ExpandPath(owned[stage])
		if dir == "" {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			o.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to clean directory")
			continue
		}
		o.logger.Debug().Str("dir", dir).Msg("Cleaned directory")
	}
}

func (o *Orchestrator) logSummary(r *domain.RunReport) {
	event := o.logger.Info().Str("run", r.ID).Dur("duration", r.Duration)
	if r.Extract != nil {
		event = event.Int("extracted", len(r.Extract.Extracted)).Int("extract_failed", len(r.Extract.Failed))
	}
	if r.Bundle != nil {
		event = event.Int("bundled", len(r.Bundle.Successful)).Int("skipped", r.Bundle.Skipped)
	}
	if r.Copy != nil {
		event = event.Int("copied", len(r.Copy.Copied))
	}
	if len(r.StageErrors) > 0 {
		event = event.Int("stage_errors", len(r.StageErrors))
	}
	event.Msg("Extension bundling completed")
}

// joinStageErrors returns nil when no stage aborted
func joinStageErrors(stageErrs []*domain.StageError) error {
	if len(stageErrs) == 0 {
		return nil
	}
	errs := make([]error, len(stageErrs))
	for i, e := range stageErrs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

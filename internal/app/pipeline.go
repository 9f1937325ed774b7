package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/extbundle/internal/bundler"
	"github.com/quantmind-br/extbundle/internal/config"
	"github.com/quantmind-br/extbundle/internal/copier"
	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/extractor"
	"github.com/quantmind-br/extbundle/internal/utils"
)

// Stage names
const (
	StageExtract = "extract"
	StageBundle  = "bundle"
	StageCopy    = "copy"
)

// State is shared by the stages of one run. Each stage reads the typed
// output of the stages before it and stores its own.
type State struct {
	Paths   config.PathsConfig
	Extract *domain.ExtractResult
	Bundle  *domain.BundleReport
	Copy    *domain.CopyResult
}

// StageFunc runs one stage against the shared state. A returned error is
// fatal for the stage, which then leaves its output in State unset so later
// stages fall back to reading the filesystem.
type StageFunc func(ctx context.Context, st *State) error

// Stage is a named pipeline step
type Stage struct {
	Name string
	Run  StageFunc
}

// Pipeline runs stages in order. A fatal stage error is recorded and the
// next stage still runs.
type Pipeline struct {
	stages []Stage
	logger *utils.Logger
}

// NewPipeline creates a pipeline from the given stages
func NewPipeline(logger *utils.Logger, stages ...Stage) *Pipeline {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Pipeline{stages: stages, logger: logger.WithComponent("pipeline")}
}

// Stages returns the names of the pipeline stages in order
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name)
	}
	return names
}

// Run executes every stage and returns the errors of the stages that
// aborted, in order. Cancellation stops the run before the next stage.
func (p *Pipeline) Run(ctx context.Context, st *State) []*domain.StageError {
	var errs []*domain.StageError
	for _, stage := range p.stages {
		log := p.logger.WithStage(stage.Name)
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("Stage not started")
			errs = append(errs, domain.NewStageError(stage.Name, err))
			break
		}
		log.Debug().Msg("Stage started")

		if err := stage.Run(ctx, st); err != nil {
			log.Error().Err(err).Msg("Stage aborted")
			errs = append(errs, domain.NewStageError(stage.Name, err))
			continue
		}

		log.Debug().Msg("Stage finished")
	}
	return errs
}

// ExtractStage unpacks Paths.Input into Paths.Archives
func ExtractStage(e *extractor.Extractor) Stage {
	return Stage{
		Name: StageExtract,
		Run: func(ctx context.Context, st *State) error {
			result, err := e.ExtractAll(ctx, st.Paths.Input, st.Paths.Archives)
			if err != nil {
				st.Extract = nil
				return err
			}
			st.Extract = result
			return nil
		},
	}
}

// BundleStage bundles the archives extracted earlier in the run, or every
// directory under Paths.Archives when run on its own.
func BundleStage(b *bundler.Bundler) Stage {
	return Stage{
		Name: StageBundle,
		Run: func(ctx context.Context, st *State) error {
			var (
				report *domain.BundleReport
				err    error
			)
			if st.Extract != nil {
				report = b.BundleAll(ctx, st.Extract.Extracted)
			} else {
				report, err = b.BundleDir(ctx, st.Paths.Archives)
			}
			if err == nil {
				err = ctx.Err()
			}
			if err != nil {
				st.Bundle = nil
				return err
			}
			st.Bundle = report
			return nil
		},
	}
}

// CopyStage copies successful bundles from Paths.Bundled to Paths.Output.
// Run on its own, every bundle directory containing at least one file
// counts as successful.
func CopyStage(c *copier.Copier) Stage {
	return Stage{
		Name: StageCopy,
		Run: func(ctx context.Context, st *State) error {
			var successful []domain.ArchiveID
			if st.Bundle != nil {
				successful = st.Bundle.Successful
			} else {
				found, err := bundledArchives(st.Paths.Bundled)
				if err != nil {
					return err
				}
				successful = found
			}

			result, err := c.CopyAll(ctx, st.Paths.Bundled, successful, st.Paths.Output)
			if err != nil {
				st.Copy = nil
				return err
			}
			st.Copy = result
			return nil
		},
	}
}

// bundledArchives lists bundle directories that hold at least one file
func bundledArchives(bundleDir string) ([]domain.ArchiveID, error) {
	dir := utils.ExpandPath(bundleDir)
	names, err := utils.ListDirs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrListArchives, bundleDir, err)
	}

	var ids []domain.ArchiveID
	for _, name := range names {
		if utils.HasFiles(filepath.Join(dir, name)) {
			ids = append(ids, domain.ArchiveID(name))
		}
	}
	return ids, nil
}

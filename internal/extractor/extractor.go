// Package extractor unpacks a directory of extension archives into
// like-named directories.
package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/utils"
)

// Extractor runs the extraction stage over every archive in a directory
type Extractor struct {
	archiver domain.ArchiveExtractor
	logger   *utils.Logger
	limit    int
	progress utils.ProgressOptions
}

// Options contains options for creating an Extractor
type Options struct {
	domain.CommonOptions
	// Archiver unpacks a single archive. Defaults to a ZipExtractor.
	Archiver    domain.ArchiveExtractor
	MaxFileSize int64
	Logger      *utils.Logger
	Progress    utils.ProgressOptions
}

// New creates a new Extractor
func New(opts Options) *Extractor {
	archiver := opts.Archiver
	if archiver == nil {
		archiver = NewZipExtractor(opts.MaxFileSize)
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Extractor{
		archiver: archiver,
		logger:   logger.WithComponent("extractor"),
		limit:    opts.Limit,
		progress: opts.Progress,
	}
}

// ExtractAll unpacks every archive file in inputDir into outputDir/<id>.
// A failing archive is recorded and skipped; only a listing failure of
// inputDir aborts the stage.
func (e *Extractor) ExtractAll(ctx context.Context, inputDir, outputDir string) (*domain.ExtractResult, error) {
	absOut, err := utils.ResolveDir(outputDir)
	if err != nil {
		return nil, err
	}

	archives, err := e.list(inputDir)
	if err != nil {
		return nil, err
	}

	result := &domain.ExtractResult{Total: len(archives)}
	if len(archives) == 0 {
		e.logger.Warn().Str("input", inputDir).Msg("No archives found")
		return result, nil
	}

	bar := utils.NewProgressBarWithOptions(len(archives), utils.DescExtracting, e.progress)
	defer func() { _ = bar.Finish() }()

	names := utils.NewNameSet()
	for i, archive := range archives {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		log := e.logger.WithArchive(archive.ID.String())
		log.Info().Msgf("Unzipping %d of %d", i+1, len(archives))
		_ = bar.Add(1)

		if prev, dup := names.Claim(archive.ID.String()); dup {
			err := fmt.Errorf("%w: %s collides with %s", domain.ErrDuplicateArchive, archive.ID, prev)
			log.Warn().Err(err).Msg("Skipping archive")
			result.Failed = append(result.Failed, domain.ArchiveFailure{ID: archive.ID, Path: archive.Path, Err: err})
			continue
		}

		dest := filepath.Join(absOut, archive.ID.String())
		_, statErr := os.Lstat(dest)
		existed := statErr == nil
		if err := e.archiver.Extract(ctx, archive.Path, dest); err != nil {
			log.Warn().Err(err).Str("path", archive.Path).Msg("Failed to extract archive")
			// only clean up what this call created
			if !existed {
				_ = os.RemoveAll(dest)
			}
			result.Failed = append(result.Failed, domain.ArchiveFailure{ID: archive.ID, Path: archive.Path, Err: err})
			continue
		}

		log.Debug().Str("dir", dest).Msg("Archive extracted")
		result.Extracted = append(result.Extracted, domain.ExtractedArchive{ID: archive.ID, Dir: dest})
	}

	e.logger.Info().
		Int("extracted", len(result.Extracted)).
		Int("failed", len(result.Failed)).
		Msg("Extraction finished")

	return result, nil
}

// list returns the archives in inputDir in listing order, capped by limit
func (e *Extractor) list(inputDir string) ([]domain.Archive, error) {
	files, err := utils.ListFiles(utils.ExpandPath(inputDir))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrListInput, inputDir, err)
	}

	if e.limit > 0 && len(files) > e.limit {
		e.logger.Debug().Int("limit", e.limit).Int("found", len(files)).Msg("Limiting archives")
		files = files[:e.limit]
	}

	archives := make([]domain.Archive, 0, len(files))
	for _, name := range files {
		path := filepath.Join(utils.ExpandPath(inputDir), name)
		archives = append(archives, domain.Archive{ID: domain.ArchiveIDFromPath(path), Path: path})
	}
	return archives, nil
}

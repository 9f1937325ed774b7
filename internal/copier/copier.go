// Package copier copies the bundle output of successful archives into the
// final output directory.
package copier

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/utils"
)

// Copier runs the copy stage
type Copier struct {
	tree     domain.TreeCopier
	logger   *utils.Logger
	progress utils.ProgressOptions
}

// Options contains options for creating a Copier
type Options struct {
	domain.CommonOptions
	// Tree copies one directory. Defaults to a DirCopier.
	Tree     domain.TreeCopier
	Logger   *utils.Logger
	Progress utils.ProgressOptions
}

// New creates a new Copier
func New(opts Options) *Copier {
	tree := opts.Tree
	if tree == nil {
		tree = NewDirCopier()
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Copier{
		tree:     tree,
		logger:   logger.WithComponent("copier"),
		progress: opts.Progress,
	}
}

// CopyAll copies bundleDir/<id> to finalDir/<id> for every id in successful.
// finalDir must not exist yet; existing output is never merged into.
func (c *Copier) CopyAll(ctx context.Context, bundleDir string, successful []domain.ArchiveID, finalDir string) (*domain.CopyResult, error) {
	finalDir = utils.ExpandPath(finalDir)
	if err := utils.EnsureDir(finalDir); err != nil {
		return nil, fmt.Errorf("creating parent of %s: %w", finalDir, err)
	}
	if err := os.Mkdir(finalDir, utils.DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrOutputExists, finalDir)
		}
		return nil, fmt.Errorf("creating %s: %w", finalDir, err)
	}

	bundleDir = utils.ExpandPath(bundleDir)
	names, err := utils.ListDirs(bundleDir)
	if err != nil {
		_ = os.Remove(finalDir)
		return nil, fmt.Errorf("%w %s: %w", domain.ErrListArchives, bundleDir, err)
	}

	wanted := make(map[domain.ArchiveID]bool, len(successful))
	for _, id := range successful {
		wanted[id] = true
	}

	result := &domain.CopyResult{}
	bar := utils.NewProgressBarWithOptions(len(successful), utils.DescCopying, c.progress)
	defer func() { _ = bar.Finish() }()

	for _, name := range names {
		id := domain.ArchiveID(name)
		if !wanted[id] {
			continue
		}
		delete(wanted, id)

		if err := ctx.Err(); err != nil {
			return result, err
		}

		log := c.logger.WithArchive(name)
		src := filepath.Join(bundleDir, name)
		dest := filepath.Join(finalDir, name)
		if err := c.tree.CopyTree(ctx, src, dest); err != nil {
			log.Warn().Err(err).Msg("Failed to copy bundle")
			result.Failed = append(result.Failed, domain.ArchiveFailure{ID: id, Path: src, Err: err})
			_ = bar.Add(1)
			continue
		}

		log.Debug().Str("dest", dest).Msg("Bundle copied")
		result.Copied = append(result.Copied, id)
		_ = bar.Add(1)
	}

	// Successful archives with no bundle directory
	for _, id := range successful {
		if !wanted[id] {
			continue
		}
		delete(wanted, id)
		err := fmt.Errorf("bundle output for %s: %w", id, fs.ErrNotExist)
		c.logger.WithArchive(id.String()).Warn().Err(err).Msg("Failed to copy bundle")
		result.Failed = append(result.Failed, domain.ArchiveFailure{ID: id, Path: filepath.Join(bundleDir, id.String()), Err: err})
	}

	c.logger.Info().
		Int("copied", len(result.Copied)).
		Int("failed", len(result.Failed)).
		Str("output", finalDir).
		Msg("Copy finished")

	return result, nil
}

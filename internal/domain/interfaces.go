package domain

import "context"

//go:generate mockgen -destination=../mocks/domain_mock.go -package=mocks github.com/quantmind-br/extbundle/internal/domain ArchiveExtractor,ScriptBundler,TreeCopier

// ArchiveExtractor unpacks a single archive
type ArchiveExtractor interface {
	// Extract unpacks archivePath into destDir
	Extract(ctx context.Context, archivePath, destDir string) error
}

// ScriptBundler bundles a single entry script into one output file
type ScriptBundler interface {
	// Bundle bundles job.Script and writes job.OutputPath
	Bundle(ctx context.Context, job ScriptJob) ScriptOutcome
}

// TreeCopier copies a directory tree
type TreeCopier interface {
	// CopyTree recursively copies src to dest
	CopyTree(ctx context.Context, src, dest string) error
}

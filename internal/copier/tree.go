package copier

import (
	"context"
	"os"

	"github.com/otiai10/copy"
)

// DirCopier copies directory trees with otiai10/copy.
// Symlinks are skipped and modification times are preserved.
type DirCopier struct{}

// NewDirCopier creates a DirCopier
func NewDirCopier() *DirCopier {
	return &DirCopier{}
}

// CopyTree recursively copies src to dest. Cancellation aborts the copy at
// the next file.
func (c *DirCopier) CopyTree(ctx context.Context, src, dest string) error {
	return copy.Copy(src, dest, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Skip
		},
		Skip: func(_ os.FileInfo, _, _ string) (bool, error) {
			return false, ctx.Err()
		},
		PreserveTimes: true,
	})
}

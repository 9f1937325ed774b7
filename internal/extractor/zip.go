package extractor

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/quantmind-br/extbundle/internal/utils"
)

// DefaultMaxDecompressSize is the per-entry uncompressed size limit used
// when none is configured.
const DefaultMaxDecompressSize int64 = 512 * 1024 * 1024

const (
	crxMagic     = "Cr24"
	filePerm     = 0644
	crxV2        = 2
	crxV3        = 3
	crxV2HdrSize = 16
	crxV3HdrSize = 12
)

// ZipExtractor unpacks zip-based extension archives (.zip, .xpi, .crx)
type ZipExtractor struct {
	maxFileSize int64
}

// NewZipExtractor creates a ZipExtractor. A non-positive maxFileSize uses
// DefaultMaxDecompressSize.
func NewZipExtractor(maxFileSize int64) *ZipExtractor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxDecompressSize
	}
	return &ZipExtractor{maxFileSize: maxFileSize}
}

// Extract extracts a zip archive to destDir.
func (z *ZipExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	offset, err := zipOffset(f, info.Size())
	if err != nil {
		return err
	}

	size := info.Size() - offset
	r, err := zip.NewReader(io.NewSectionReader(f, offset, size), size)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}

	absDestDir, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolving destination path: %w", err)
	}
	absDestDir = filepath.Clean(absDestDir)

	for _, entry := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Block symlinks to prevent writes through a link
		if entry.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrSymlink, entry.Name)
		}

		name := strings.ReplaceAll(entry.Name, `\`, "/")
		fpath := filepath.Join(absDestDir, filepath.FromSlash(name))

		// Check for ZipSlip
		if !isWithinDir(absDestDir, fpath) {
			return fmt.Errorf("%w: %s", ErrUnsafePath, entry.Name)
		}

		if entry.FileInfo().IsDir() || strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(fpath, utils.DirPerm); err != nil {
				return fmt.Errorf("creating directory %s: %w", fpath, err)
			}
			continue
		}

		if err := utils.EnsureDir(fpath); err != nil {
			return fmt.Errorf("creating parent directory for %s: %w", fpath, err)
		}

		if err := z.extractFile(entry, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", entry.Name, err)
		}
	}

	return nil
}

// extractFile extracts a single file from the zip.
func (z *ZipExtractor) extractFile(f *zip.File, destPath string) error {
	declaredSize := f.UncompressedSize64
	if declaredSize > uint64(z.maxFileSize) {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrFileTooLarge, declaredSize, z.maxFileSize)
	}

	// Zips written on some platforms carry no permission bits
	perm := f.Mode().Perm()
	if perm&0600 != 0600 {
		perm |= filePerm
	}

	outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() { _ = outFile.Close() }()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	// One extra byte detects entries larger than declared
	limited := io.LimitReader(rc, int64(declaredSize)+1)
	written, err := io.Copy(outFile, limited)
	if err != nil {
		return err
	}
	if written > int64(declaredSize) {
		return fmt.Errorf("decompressed size exceeds declared size")
	}

	return outFile.Close()
}

// zipOffset returns where the zip payload starts. Plain zips start at 0;
// Chrome CRX files prefix the zip with a signed header.
func zipOffset(r io.ReaderAt, size int64) (int64, error) {
	var hdr [crxV2HdrSize]byte
	if size < int64(len(crxMagic)) {
		return 0, nil
	}
	n, err := r.ReadAt(hdr[:], 0)
	if n < len(crxMagic) || string(hdr[:len(crxMagic)]) != crxMagic {
		return 0, nil
	}
	if n < crxV3HdrSize {
		return 0, fmt.Errorf("%w: truncated (%v)", ErrBadCRX, err)
	}

	var offset int64
	switch version := binary.LittleEndian.Uint32(hdr[4:8]); version {
	case crxV2:
		if n < crxV2HdrSize {
			return 0, fmt.Errorf("%w: truncated", ErrBadCRX)
		}
		keyLen := int64(binary.LittleEndian.Uint32(hdr[8:12]))
		sigLen := int64(binary.LittleEndian.Uint32(hdr[12:16]))
		offset = crxV2HdrSize + keyLen + sigLen
	case crxV3:
		hdrLen := int64(binary.LittleEndian.Uint32(hdr[8:12]))
		offset = crxV3HdrSize + hdrLen
	default:
		return 0, fmt.Errorf("%w: unsupported version %d", ErrBadCRX, version)
	}

	if offset > size {
		return 0, fmt.Errorf("%w: header length %d exceeds file size %d", ErrBadCRX, offset, size)
	}
	return offset, nil
}

// isWithinDir checks if the target path is within the base directory.
func isWithinDir(absBaseDir, targetPath string) bool {
	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		return false
	}
	absTarget = filepath.Clean(absTarget)

	return strings.HasPrefix(absTarget, absBaseDir+string(filepath.Separator)) ||
		absTarget == absBaseDir
}

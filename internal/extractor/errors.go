package extractor

import "errors"

// Sentinel errors for archive extraction
var (
	// ErrUnsafePath indicates an entry would be written outside the destination
	ErrUnsafePath = errors.New("invalid file path (path traversal detected)")

	// ErrFileTooLarge indicates an entry exceeds the decompression limit
	ErrFileTooLarge = errors.New("file too large")

	// ErrSymlink indicates the archive contains a symbolic link
	ErrSymlink = errors.New("symlinks not supported in archives")

	// ErrBadCRX indicates a file starts with the CRX magic but has a corrupt header
	ErrBadCRX = errors.New("invalid crx header")
)

package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest not found")

	// ErrInvalidFormat indicates the manifest file is not valid JSON
	// or a field has the wrong shape
	ErrInvalidFormat = errors.New("malformed manifest")

	// ErrMissingBackground indicates background.scripts is absent or empty
	ErrMissingBackground = errors.New("missing background script")
)

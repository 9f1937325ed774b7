package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrListInput indicates the archive input directory could not be listed
	ErrListInput = errors.New("cannot list input directory")

	// ErrListArchives indicates the extracted archives root could not be listed
	ErrListArchives = errors.New("cannot list archives directory")

	// ErrOutputExists indicates the final output directory already exists
	ErrOutputExists = errors.New("output directory already exists")

	// ErrDuplicateArchive indicates two archives share the same basename
	ErrDuplicateArchive = errors.New("duplicate archive name")

	// ErrBundleFailed indicates the bundler reported errors for a script
	ErrBundleFailed = errors.New("bundle failed")

	// ErrNoScripts indicates an archive declared no scripts to bundle
	ErrNoScripts = errors.New("no scripts to bundle")

	// ErrUnsafeScriptPath indicates a manifest script path that leaves the archive
	ErrUnsafeScriptPath = errors.New("script path escapes the archive")
)

// StageError represents a fatal error that aborted a pipeline stage
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s aborted: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError
func NewStageError(stage string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}

// ScriptError carries the bundler messages for a script that failed
type ScriptError struct {
	Script   string
	Messages []string
}

func (e *ScriptError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("bundling %s failed", e.Script)
	}
	return fmt.Sprintf("bundling %s failed: %s", e.Script, strings.Join(e.Messages, "; "))
}

func (e *ScriptError) Unwrap() error {
	return ErrBundleFailed
}

// NewScriptError creates a new ScriptError
func NewScriptError(script string, messages []string) *ScriptError {
	return &ScriptError{
		Script:   script,
		Messages: messages,
	}
}

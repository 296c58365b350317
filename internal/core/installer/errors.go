// Package installer runs the skeleton installation pipeline: manifest
// update, template materialization, registration patching, layered
// structuring and self-removal. Stages run strictly in sequence; a fatal
// error aborts the run and leaves the tree as it is for inspection.
package installer

import (
	"errors"
	"fmt"
)

// Sentinel errors for the installer package.
var (
	// ErrAlreadyInstalled indicates the installer directory is gone, which
	// means a previous run completed and removed it.
	ErrAlreadyInstalled = errors.New("skeleton already installed: installer directory not found")

	// ErrInvalidRoot indicates the given skeleton root is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid skeleton root")

	// ErrInvalidArchitecture indicates an unknown architecture in a selection.
	ErrInvalidArchitecture = errors.New("invalid architecture: must be flat or layered")

	// ErrMissingDependency indicates Options lacks a required collaborator.
	ErrMissingDependency = errors.New("installer: missing dependency")
)

// StageError reports the pipeline stage that failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

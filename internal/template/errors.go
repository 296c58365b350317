// Package template copies the installer's template trees into the
// skeleton. Template files are PHP and config payload and are written
// verbatim.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrPathTraversal indicates a template path would be written outside
	// its destination directory.
	ErrPathTraversal = errors.New("template: path traversal detected")

	// ErrNotDirectory indicates a template source exists but is not a directory.
	ErrNotDirectory = errors.New("template: source is not a directory")
)

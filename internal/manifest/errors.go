// Package manifest reads, edits and writes composer manifests
// (composer.json) without reordering their keys, and implements the
// manifest update stage: merging feature packages into the root manifest
// and synchronizing them into the backend manifest.
package manifest

import "errors"

// Sentinel errors for the manifest package.
var (
	// ErrInvalidManifest indicates the manifest is not a JSON object document.
	ErrInvalidManifest = errors.New("manifest: invalid manifest")

	// ErrManifestRead indicates the manifest file could not be read.
	ErrManifestRead = errors.New("manifest: read failure")

	// ErrNotObject indicates a path traverses a value that is not a JSON object.
	ErrNotObject = errors.New("manifest: value is not an object")
)

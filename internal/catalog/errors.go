// Package catalog defines the optional feature groups the installer can
// add to a generated project, and loads the feature catalog from YAML or
// TOML. A Catalog is immutable once built and is passed explicitly to the
// installer.
package catalog

import "errors"

// Sentinel errors for the catalog package.
var (
	// ErrInvalidSymbol indicates a malformed fully-qualified class name.
	ErrInvalidSymbol = errors.New("catalog: invalid symbol")

	// ErrInvalidCatalog indicates the catalog failed validation.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")

	// ErrUnknownFeature indicates a selection referenced a key not in the catalog.
	ErrUnknownFeature = errors.New("catalog: unknown feature")

	// ErrUnsupportedFormat indicates a catalog file with an unknown extension.
	ErrUnsupportedFormat = errors.New("catalog: unsupported file format")
)

// Package defs holds file and directory names shared across packages.
package defs

// File names inside the installer's docs directory.
const (
	// ArchitectureMD is the architecture guide shipped with the layered variant.
	ArchitectureMD = "ARCHITECTURE.md"

	// readmePrefix and readmeSuffix frame the per-architecture README name.
	readmePrefix = "README."
	readmeSuffix = ".md"
)

// Template tree directory names under templates/<arch>/.
const (
	BaseDir     = "base"
	ConfigDir   = "config"
	FeaturesDir = "features"
	ModulesDir  = "modules"
)

// Catalog file names looked up in the installer directory, in order.
const (
	CatalogYAML = "catalog.yaml"
	CatalogYML  = "catalog.yml"
	CatalogTOML = "catalog.toml"
)

// ReadmeVariant returns the README file name for an architecture,
// e.g. "README.layered.md".
func ReadmeVariant(arch string) string {
	return readmePrefix + arch + readmeSuffix
}

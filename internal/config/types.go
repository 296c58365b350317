package config

import (
	"path/filepath"
	"strings"
)

// Layout describes where the installer finds and writes things inside a
// skeleton checkout. All paths are slash-separated and relative to the
// project root unless noted otherwise.
type Layout struct {
	InstallerDir      string `yaml:"installer_dir"`
	BackendDir        string `yaml:"backend_dir"`
	RootManifest      string `yaml:"root_manifest"`
	RootLock          string `yaml:"root_lock"`
	BackendManifest   string `yaml:"backend_manifest"`
	ConfigFile        string `yaml:"config_file"`
	PipelineFile      string `yaml:"pipeline_file"`
	AutoloadConfigDir string `yaml:"autoload_config_dir"`

	// TemplatesDir and DocsDir are relative to InstallerDir.
	TemplatesDir string `yaml:"templates_dir"`
	DocsDir      string `yaml:"docs_dir"`

	Readme          string `yaml:"readme"`
	ArchitectureDoc string `yaml:"architecture_doc"`

	RootQualityFiles []string `yaml:"root_quality_files"`
	CacheFiles       []string `yaml:"cache_files"`

	// ExcludedPackage is never copied from the root into the backend manifest.
	ExcludedPackage string `yaml:"excluded_package"`

	// InstallerNamespace is the PSR-4 prefix of the installer's own code.
	// Script hooks mentioning it are stripped during self-removal.
	InstallerNamespace string `yaml:"installer_namespace"`

	Markers Markers       `yaml:"markers"`
	Flat    FlatLayout    `yaml:"flat"`
	Layered LayeredLayout `yaml:"layered"`
}

// Markers are the literal lines generated code is spliced in front of.
type Markers struct {
	Provider     string `yaml:"provider"`
	First        string `yaml:"first"`
	Early        string `yaml:"early"`
	AfterRouting string `yaml:"after_routing"`
}

// ForPosition returns the pipeline marker for a middleware position tag,
// or "" for an unknown tag.
func (m Markers) ForPosition(position string) string {
	switch position {
	case "first":
		return m.First
	case "early":
		return m.Early
	case "after-routing":
		return m.AfterRouting
	}
	return ""
}

// FlatLayout describes the single-module flat architecture.
type FlatLayout struct {
	Module    string `yaml:"module"`
	SourceDir string `yaml:"source_dir"` // relative to BackendDir
}

// LayeredLayout describes the modules materialized for the layered architecture.
type LayeredLayout struct {
	// Modules are copied in order; the first one is the shared kernel.
	Modules []string `yaml:"modules"`
	// ProviderModules replace the flat module's provider entry.
	ProviderModules []string `yaml:"provider_modules"`
}

// Path joins a slash-separated layout path onto root.
func (l *Layout) Path(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// InstallerPath resolves a path inside the installer directory.
func (l *Layout) InstallerPath(root string, elem ...string) string {
	parts := append([]string{root, filepath.FromSlash(l.InstallerDir)}, elem...)
	return filepath.Join(parts...)
}

// TemplatesPath returns the slash-separated template root for an
// architecture, relative to the installer directory. It is the form used
// with an fs.FS rooted at the installer directory.
func (l *Layout) TemplatesPath(arch string, elem ...string) string {
	parts := append([]string{strings.Trim(l.TemplatesDir, "/"), arch}, elem...)
	return strings.Join(parts, "/")
}

// ModuleNamespace returns the PSR-4 namespace key of a module ("Core\\").
func ModuleNamespace(module string) string {
	return module + `\`
}

// ModuleSourcePath returns the backend-relative PSR-4 path of a module.
func (l *Layout) ModuleSourcePath(module string) string {
	return strings.Trim(l.Flat.SourceDir, "/") + "/" + module + "/"
}

// RootModuleSourcePath returns the root-relative PSR-4 path of a module.
func (l *Layout) RootModuleSourcePath(module string) string {
	return strings.Trim(l.BackendDir, "/") + "/" + l.ModuleSourcePath(module)
}

// ProviderLine returns the config-aggregation entry registering a module.
func ProviderLine(module string) string {
	return "    " + module + `\ConfigProvider::class,`
}

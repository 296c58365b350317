package config

// Default layout values of the shipped skeleton.
const (
	DefaultInstallerDir      = "installer"
	DefaultBackendDir        = "backend"
	DefaultRootManifest      = "composer.json"
	DefaultRootLock          = "composer.lock"
	DefaultBackendManifest   = "backend/composer.json"
	DefaultConfigFile        = "backend/config/config.php"
	DefaultPipelineFile      = "backend/config/pipeline.php"
	DefaultAutoloadConfigDir = "backend/config/autoload"
	DefaultTemplatesDir      = "templates"
	DefaultDocsDir           = "docs"
	DefaultReadme            = "README.md"
	DefaultArchitectureDoc   = "docs/ARCHITECTURE.md"

	DefaultExcludedPackage    = "php"
	DefaultInstallerNamespace = `Installer\`

	DefaultProviderMarker     = "    // Default App module config"
	DefaultFirstMarker        = "    $app->pipe(ServerUrlMiddleware::class);"
	DefaultEarlyMarker        = "    // Register the routing middleware in the middleware pipeline."
	DefaultAfterRoutingMarker = "    // Register the dispatch middleware in the middleware pipeline"

	DefaultFlatModule    = "App"
	DefaultFlatSourceDir = "src"
)

// LayoutFile is the optional overlay file inside the installer directory.
const LayoutFile = "installer.yaml"

// NewDefaultLayout returns a Layout with all fields set to compiled defaults.
func NewDefaultLayout() *Layout {
	return &Layout{
		InstallerDir:      DefaultInstallerDir,
		BackendDir:        DefaultBackendDir,
		RootManifest:      DefaultRootManifest,
		RootLock:          DefaultRootLock,
		BackendManifest:   DefaultBackendManifest,
		ConfigFile:        DefaultConfigFile,
		PipelineFile:      DefaultPipelineFile,
		AutoloadConfigDir: DefaultAutoloadConfigDir,
		TemplatesDir:      DefaultTemplatesDir,
		DocsDir:           DefaultDocsDir,
		Readme:            DefaultReadme,
		ArchitectureDoc:   DefaultArchitectureDoc,
		RootQualityFiles: []string{
			"phpcs.xml.dist",
			"phpstan.neon.dist",
			"phpunit.xml.dist",
			"rector.php",
		},
		CacheFiles: []string{
			"backend/data/cache/config-cache.php",
		},
		ExcludedPackage:    DefaultExcludedPackage,
		InstallerNamespace: DefaultInstallerNamespace,
		Markers: Markers{
			Provider:     DefaultProviderMarker,
			First:        DefaultFirstMarker,
			Early:        DefaultEarlyMarker,
			AfterRouting: DefaultAfterRoutingMarker,
		},
		Flat: FlatLayout{
			Module:    DefaultFlatModule,
			SourceDir: DefaultFlatSourceDir,
		},
		Layered: LayeredLayout{
			Modules:         []string{"Core", "Article", "HealthCheck"},
			ProviderModules: []string{"Article", "HealthCheck"},
		},
	}
}

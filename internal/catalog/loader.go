package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/defs"
)

//go:embed default.yaml
var defaultCatalog []byte

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FileNames are the catalog override files looked up in the installer
// directory, in order.
var FileNames = []string{defs.CatalogYAML, defs.CatalogYML, defs.CatalogTOML}

// DefaultSource names the embedded catalog in Source values.
const DefaultSource = "built-in"

// fileCatalog is the on-disk schema shared by the YAML and TOML formats.
type fileCatalog struct {
	Features []fileFeature `yaml:"features" toml:"features"`
}

type fileFeature struct {
	Key         string            `yaml:"key" toml:"key"`
	Group       string            `yaml:"group" toml:"group"`
	Prompt      string            `yaml:"prompt" toml:"prompt"`
	Description string            `yaml:"description" toml:"description"`
	Default     bool              `yaml:"default" toml:"default"`
	Packages    map[string]string `yaml:"packages" toml:"packages"`
	Config      string            `yaml:"config" toml:"config"`
	Provider    string            `yaml:"provider" toml:"provider"`
	Middleware  string            `yaml:"middleware" toml:"middleware"`
	Position    string            `yaml:"position" toml:"position"`
	Dev         bool              `yaml:"dev" toml:"dev"`
}

// FormatFromPath derives the catalog format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return c, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Resolve picks the catalog for a run: the explicit path when given,
// otherwise the first override file found in installerDir, otherwise the
// built-in catalog. The second return value names the source used.
func Resolve(explicit, installerDir string) (*Catalog, string, error) {
	if explicit != "" {
		c, err := Load(explicit)
		return c, explicit, err
	}

	for _, name := range FileNames {
		path := filepath.Join(installerDir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, path, fmt.Errorf("stat catalog: %w", err)
		}
		c, err := Load(path)
		return c, path, err
	}

	c, err := Default()
	return c, DefaultSource, err
}

// Parse decodes catalog data in the given format and validates it.
// Unknown keys are rejected so typos do not silently drop wiring.
func Parse(data []byte, format Format) (*Catalog, error) {
	var fc fileCatalog

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: yaml: %v", ErrInvalidCatalog, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &fc)
		if err != nil {
			return nil, fmt.Errorf("%w: toml: %v", ErrInvalidCatalog, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%w: toml: unknown keys: %s", ErrInvalidCatalog, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	groups := make([]FeatureGroup, 0, len(fc.Features))
	for _, ff := range fc.Features {
		g, err := ff.toFeatureGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return New(groups)
}

// toFeatureGroup converts the file schema into a FeatureGroup. Package
// maps carry no order in either format, so packages are sorted by name.
func (ff fileFeature) toFeatureGroup() (FeatureGroup, error) {
	provider, err := ParseSymbol(ff.Provider)
	if err != nil {
		return FeatureGroup{}, fmt.Errorf("feature %q provider: %w", ff.Key, err)
	}
	middleware, err := ParseSymbol(ff.Middleware)
	if err != nil {
		return FeatureGroup{}, fmt.Errorf("feature %q middleware: %w", ff.Key, err)
	}

	names := make([]string, 0, len(ff.Packages))
	for name := range ff.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	packages := make([]Package, len(names))
	for i, name := range names {
		packages[i] = Package{Name: name, Version: ff.Packages[name]}
	}

	return FeatureGroup{
		Key:            strings.TrimSpace(ff.Key),
		Group:          strings.TrimSpace(ff.Group),
		Prompt:         strings.TrimSpace(ff.Prompt),
		Description:    strings.TrimSpace(ff.Description),
		Default:        ff.Default,
		Packages:       packages,
		ConfigTemplate: strings.TrimSpace(ff.Config),
		Provider:       provider,
		Middleware:     middleware,
		Position:       Position(strings.TrimSpace(ff.Position)),
		Dev:            ff.Dev,
	}, nil
}

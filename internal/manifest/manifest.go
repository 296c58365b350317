package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest section names.
const (
	SectionRequire    = "require"
	SectionRequireDev = "require-dev"
)

// RequireSections lists the dependency sections kept in sync between manifests.
func RequireSections() []string {
	return []string{SectionRequire, SectionRequireDev}
}

// Manifest is a composer.json file loaded into memory.
type Manifest struct {
	Path string
	Doc  *Document
	perm fs.FileMode
}

// Load reads and parses the manifest at path. Read failures wrap
// ErrManifestRead, parse failures wrap ErrInvalidManifest; both carry path.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestRead, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestRead, path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{Path: path, Doc: doc, perm: info.Mode().Perm()}, nil
}

// Save writes the manifest back to its path in full.
func (m *Manifest) Save() error {
	data, err := m.Doc.Bytes()
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.Path, err)
	}
	perm := m.perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(m.Path, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", m.Path, err)
	}
	return nil
}

// Name returns the composer package name, or "" when unset.
func (m *Manifest) Name() string {
	name, _ := m.Doc.String("name")
	return name
}

// Requires returns the entries of a dependency section in document order.
func (m *Manifest) Requires(section string) []Entry {
	return m.Doc.Entries(section)
}

// Require sets pkg to version in section, overwriting an existing constraint.
func (m *Manifest) Require(section, pkg, version string) error {
	return m.Doc.SetString(version, section, pkg)
}

// AutoloadPSR4 returns the autoload psr-4 namespace map in document order.
func (m *Manifest) AutoloadPSR4() []Entry {
	return m.Doc.Entries("autoload", "psr-4")
}

// SetAutoloadPSR4 maps namespace to path in autoload psr-4.
func (m *Manifest) SetAutoloadPSR4(namespace, path string) error {
	return m.Doc.SetString(path, "autoload", "psr-4", namespace)
}

// RemoveAutoloadPSR4 removes namespace from autoload psr-4.
func (m *Manifest) RemoveAutoloadPSR4(namespace string) bool {
	return m.Doc.Delete("autoload", "psr-4", namespace)
}

// StripScripts removes every script hook command that contains token.
// A string hook that matches is removed; a list hook is filtered and
// removed when it ends up empty. scripts-descriptions entries of removed
// hooks are dropped too. It returns the names of the removed hooks.
func (m *Manifest) StripScripts(token string) []string {
	scripts := m.Doc.lookup("scripts")
	if scripts == nil || scripts.Kind != yaml.MappingNode {
		return nil
	}

	var removed []string
	kept := scripts.Content[:0]
	for i := 0; i+1 < len(scripts.Content); i += 2 {
		key, value := scripts.Content[i], scripts.Content[i+1]
		switch {
		case isString(value):
			if strings.Contains(value.Value, token) {
				removed = append(removed, key.Value)
				continue
			}
		case value.Kind == yaml.SequenceNode:
			items := value.Content[:0]
			for _, item := range value.Content {
				if isString(item) && strings.Contains(item.Value, token) {
					continue
				}
				items = append(items, item)
			}
			value.Content = items
			if len(items) == 0 {
				removed = append(removed, key.Value)
				continue
			}
		}
		kept = append(kept, key, value)
	}
	scripts.Content = kept

	for _, name := range removed {
		m.Doc.Delete("scripts-descriptions", name)
	}
	return removed
}

// LoadAll loads every manifest in paths, failing on the first error so
// that callers can validate all inputs before writing any of them.
func LoadAll(paths ...string) ([]*Manifest, error) {
	out := make([]*Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// SaveAll saves every manifest and joins the failures.
func SaveAll(manifests ...*Manifest) error {
	var errs []error
	for _, m := range manifests {
		if err := m.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

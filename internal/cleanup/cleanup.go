// Package cleanup removes the installer from a skeleton once installation
// has succeeded and puts the architecture's documentation in place.
package cleanup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/defs"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/manifest"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// Result reports what self-removal changed.
type Result struct {
	RemovedHooks []string
	RemovedPaths []string
	WrittenDocs  []string
	Warnings     []string
}

// Cleaner removes the installer from one skeleton root.
type Cleaner struct {
	root   string
	layout *config.Layout
	logger *slog.Logger
}

// NewCleaner creates a Cleaner.
func NewCleaner(root string, layout *config.Layout, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cleaner{root: root, layout: layout, logger: logger}
}

// Run strips the installer's autoload entry and script hooks from both
// manifests, deletes the installer directory and the root-scoped files,
// and writes the README (and architecture guide) for arch. Documents are
// read before the installer directory is deleted.
func (c *Cleaner) Run(arch models.Architecture) (*Result, error) {
	l := c.layout
	res := &Result{}

	docs, warnings := c.readDocs(arch)
	res.Warnings = append(res.Warnings, warnings...)

	manifests, err := manifest.LoadAll(l.Path(c.root, l.RootManifest), l.Path(c.root, l.BackendManifest))
	if err != nil {
		return nil, err
	}
	for _, m := range manifests {
		m.RemoveAutoloadPSR4(l.InstallerNamespace)
		res.RemovedHooks = append(res.RemovedHooks, m.StripScripts(l.InstallerNamespace)...)
	}
	if err := manifest.SaveAll(manifests...); err != nil {
		return nil, err
	}

	installerDir := l.Path(c.root, l.InstallerDir)
	if err := os.RemoveAll(installerDir); err != nil {
		return nil, fmt.Errorf("remove installer %s: %w", installerDir, err)
	}
	res.RemovedPaths = append(res.RemovedPaths, l.InstallerDir)

	rootFiles := append([]string{l.RootManifest, l.RootLock}, l.RootQualityFiles...)
	for _, rel := range rootFiles {
		removed, err := removeFile(l.Path(c.root, rel))
		if err != nil {
			return nil, err
		}
		if removed {
			res.RemovedPaths = append(res.RemovedPaths, rel)
		}
	}

	for _, d := range docs {
		path := l.Path(c.root, d.dest)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, d.data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		res.WrittenDocs = append(res.WrittenDocs, d.dest)
	}

	for _, w := range res.Warnings {
		c.logger.Warn("document not installed", "detail", w)
	}
	c.logger.Info("installer removed",
		"hooks", len(res.RemovedHooks),
		"paths", len(res.RemovedPaths),
		"docs", res.WrittenDocs,
	)
	return res, nil
}

type document struct {
	dest string
	data []byte
}

// readDocs loads the documents to install for arch. A missing document is
// reported as a warning and the existing file is kept.
func (c *Cleaner) readDocs(arch models.Architecture) ([]document, []string) {
	l := c.layout
	wanted := []document{{dest: l.Readme}}
	sources := []string{defs.ReadmeVariant(string(arch))}
	if arch == models.ArchLayered {
		wanted = append(wanted, document{dest: l.ArchitectureDoc})
		sources = append(sources, defs.ArchitectureMD)
	}

	var docs []document
	var warnings []string
	for i, name := range sources {
		src := l.InstallerPath(c.root, filepath.FromSlash(l.DocsDir), name)
		data, err := os.ReadFile(src)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s not installed: %v", wanted[i].dest, err))
			continue
		}
		wanted[i].data = data
		docs = append(docs, wanted[i])
	}
	return docs, warnings
}

func removeFile(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
}

// Package structure converts a freshly materialized skeleton from the
// flat single-module layout into the layered module layout.
package structure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/defs"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/manifest"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/patch"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/template"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// Result reports what the layered conversion changed.
type Result struct {
	Modules      []string
	Files        int
	CacheRemoved []string
	Warnings     []patch.MarkerWarning
}

// Structurer performs the layered conversion for one skeleton root.
type Structurer struct {
	root   string
	layout *config.Layout
	mat    *template.Materializer
	logger *slog.Logger
}

// NewStructurer creates a Structurer. mat must read from the installer
// directory.
func NewStructurer(root string, layout *config.Layout, mat *template.Materializer, logger *slog.Logger) *Structurer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Structurer{root: root, layout: layout, mat: mat, logger: logger}
}

// Apply removes the flat module, materializes the layered modules, remaps
// PSR-4 autoloading in both manifests, swaps the module providers and
// clears the merged-config cache.
func (s *Structurer) Apply(ctx context.Context) (*Result, error) {
	l := s.layout
	res := &Result{}

	// Both manifests must parse before the tree is touched.
	manifests, err := manifest.LoadAll(l.Path(s.root, l.RootManifest), l.Path(s.root, l.BackendManifest))
	if err != nil {
		return nil, err
	}

	flatDir := l.Path(s.root, l.RootModuleSourcePath(l.Flat.Module))
	if err := os.RemoveAll(flatDir); err != nil {
		return nil, fmt.Errorf("remove flat module %s: %w", flatDir, err)
	}

	for _, module := range l.Layered.Modules {
		src := l.TemplatesPath(string(models.ArchLayered), defs.ModulesDir, module)
		dest := l.Path(s.root, l.RootModuleSourcePath(module))
		r, err := s.mat.Materialize(ctx, src, dest)
		if err != nil {
			return nil, fmt.Errorf("materialize module %s: %w", module, err)
		}
		res.Modules = append(res.Modules, module)
		res.Files += r.Count()
	}

	if err := s.remapAutoload(manifests[0], manifests[1]); err != nil {
		return nil, err
	}
	if err := manifest.SaveAll(manifests...); err != nil {
		return nil, err
	}

	if err := s.swapProviders(res); err != nil {
		return nil, err
	}

	removed, err := s.clearCache()
	if err != nil {
		return nil, err
	}
	res.CacheRemoved = removed

	s.logger.Info("layered structure applied",
		"modules", res.Modules,
		"files", res.Files,
		"cache_removed", len(removed),
	)
	return res, nil
}

func (s *Structurer) remapAutoload(root, backend *manifest.Manifest) error {
	l := s.layout
	flatNS := config.ModuleNamespace(l.Flat.Module)
	root.RemoveAutoloadPSR4(flatNS)
	backend.RemoveAutoloadPSR4(flatNS)

	for _, module := range l.Layered.Modules {
		ns := config.ModuleNamespace(module)
		if err := backend.SetAutoloadPSR4(ns, l.ModuleSourcePath(module)); err != nil {
			return fmt.Errorf("%s: %w", backend.Path, err)
		}
		if err := root.SetAutoloadPSR4(ns, l.RootModuleSourcePath(module)); err != nil {
			return fmt.Errorf("%s: %w", root.Path, err)
		}
	}
	return nil
}

func (s *Structurer) swapProviders(res *Result) error {
	l := s.layout
	path := l.Path(s.root, l.ConfigFile)
	flatLine := config.ProviderLine(l.Flat.Module)

	lines := make([]string, 0, len(l.Layered.ProviderModules))
	for _, module := range l.Layered.ProviderModules {
		lines = append(lines, config.ProviderLine(module))
	}

	found, err := patch.ReplaceLineInFile(path, flatLine, lines)
	if err != nil {
		return err
	}
	if !found {
		w := patch.MarkerWarning{File: path, Marker: flatLine, Purpose: "layered module providers"}
		res.Warnings = append(res.Warnings, w)
		s.logger.Warn("provider line not found", "file", path, "line", flatLine)
	}
	return nil
}

func (s *Structurer) clearCache() ([]string, error) {
	var removed []string
	for _, rel := range s.layout.CacheFiles {
		path := s.layout.Path(s.root, rel)
		err := os.Remove(path)
		switch {
		case err == nil:
			removed = append(removed, rel)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return removed, fmt.Errorf("remove cache %s: %w", path, err)
		}
	}
	return removed, nil
}

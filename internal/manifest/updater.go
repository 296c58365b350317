package manifest

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
)

// ApplySelection writes the packages of every group into m, in the given
// order. Later groups overwrite constraints set by earlier ones; nothing
// is removed. It returns the number of constraints written.
func ApplySelection(m *Manifest, groups []catalog.FeatureGroup) (int, error) {
	n := 0
	for _, g := range groups {
		section := g.RequireSection()
		for _, pkg := range g.Packages {
			if err := m.Require(section, pkg.Name, pkg.Version); err != nil {
				return n, fmt.Errorf("%s: feature %s: %w", m.Path, g.Key, err)
			}
			n++
		}
	}
	return n, nil
}

// Sync copies every require and require-dev entry of src into the same
// section of dst, except the package named exclude. It returns the number
// of entries copied.
func Sync(src, dst *Manifest, exclude string) (int, error) {
	n := 0
	for _, section := range RequireSections() {
		for _, e := range src.Requires(section) {
			if e.Key == exclude {
				continue
			}
			if err := dst.Require(section, e.Key, e.Value); err != nil {
				return n, fmt.Errorf("%s: %w", dst.Path, err)
			}
			n++
		}
	}
	return n, nil
}

// UpdateResult reports what the manifest stage changed.
type UpdateResult struct {
	Applied int
	Synced  int
}

// Updater merges selected feature packages into the root manifest and
// synchronizes the result into the backend manifest.
type Updater struct {
	rootPath    string
	backendPath string
	exclude     string
	logger      *slog.Logger
}

// NewUpdater creates an Updater for the two manifest paths. exclude is the
// package left out of synchronization (the platform "php" constraint).
func NewUpdater(rootPath, backendPath, exclude string, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Updater{
		rootPath:    rootPath,
		backendPath: backendPath,
		exclude:     exclude,
		logger:      logger,
	}
}

// Update loads both manifests, applies groups to the root manifest, syncs
// it into the backend manifest and saves both. Nothing is written unless
// both manifests parse.
func (u *Updater) Update(groups []catalog.FeatureGroup) (*UpdateResult, error) {
	manifests, err := LoadAll(u.rootPath, u.backendPath)
	if err != nil {
		return nil, err
	}
	root, backend := manifests[0], manifests[1]

	applied, err := ApplySelection(root, groups)
	if err != nil {
		return nil, err
	}
	synced, err := Sync(root, backend, u.exclude)
	if err != nil {
		return nil, err
	}
	if err := SaveAll(root, backend); err != nil {
		return nil, err
	}

	u.logger.Debug("manifests updated",
		"root", u.rootPath,
		"backend", u.backendPath,
		"applied", applied,
		"synced", synced,
	)
	return &UpdateResult{Applied: applied, Synced: synced}, nil
}

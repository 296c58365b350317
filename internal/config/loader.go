package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load returns the layout for the skeleton at root. Compiled defaults are
// overlaid with installer/installer.yaml when that file exists; fields the
// file omits keep their defaults and unknown fields are rejected. The
// overlay is always read from the default installer directory, so it may
// not move installer_dir. The result is validated.
func Load(root string, logger *slog.Logger) (*Layout, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	layout := NewDefaultLayout()
	path := filepath.Join(filepath.Clean(root), DefaultInstallerDir, LayoutFile)

	loaded, err := loadYAMLFile(path, layout)
	if err != nil {
		return nil, err
	}
	if loaded {
		logger.Debug("layout overlay loaded", "path", path)
		if layout.InstallerDir != DefaultInstallerDir {
			return nil, &ValidationErrors{Errors: []ValidationError{{
				Field:   "installer_dir",
				Message: "cannot be changed by " + LayoutFile + ", which is read from " + DefaultInstallerDir,
				Value:   layout.InstallerDir,
				Wrapped: ErrInvalidConfig,
			}}}
		}
	} else {
		logger.Debug("no layout overlay, using defaults", "path", path)
	}

	if err := Validate(layout); err != nil {
		return nil, err
	}
	return layout, nil
}

// loadYAMLFile decodes the file at path into target, rejecting unknown
// fields. Returns (false, nil) if the file does not exist.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %v", ErrConfigRead, path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("parse %s: %w: %v", path, ErrInvalidYAML, err)
	}
	return true, nil
}

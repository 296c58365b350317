package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/defs"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/patch"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// Check verifies, for every architecture, that the configuration files an
// installation would patch still carry every marker the whole catalog
// needs. The base template of a file is checked when the architecture
// ships one, the file already in the backend otherwise. A file missing
// from both places is reported as a missing marker too.
func (i *Installer) Check() ([]patch.MarkerWarning, error) {
	groups := i.catalog.Groups()
	p := patch.NewPatcher(i.layout.Markers, i.logger)

	var out []patch.MarkerWarning
	for _, arch := range models.ValidArchitectures() {
		file, content, err := i.checkTarget(arch, i.layout.ConfigFile)
		if err != nil {
			return nil, err
		}
		out = append(out, p.VerifyProviders(file, content, groups)...)
		if arch == models.ArchLayered {
			flatLine := config.ProviderLine(i.layout.Flat.Module)
			if !patch.ContainsLine(content, flatLine) {
				out = append(out, patch.MarkerWarning{File: file, Marker: flatLine, Purpose: "layered module providers"})
			}
		}

		file, content, err = i.checkTarget(arch, i.layout.PipelineFile)
		if err != nil {
			return nil, err
		}
		out = append(out, p.VerifyPipeline(file, content, groups)...)
	}

	for _, w := range out {
		i.logger.Debug("marker drift", "file", w.File, "marker", w.Marker)
	}
	return out, nil
}

// checkTarget returns the label and content of the file rel (root-relative)
// as it will look right after the templates stage for arch. A missing file
// yields empty content.
func (i *Installer) checkTarget(arch models.Architecture, rel string) (string, string, error) {
	inBackend := strings.TrimPrefix(rel, strings.Trim(i.layout.BackendDir, "/")+"/")
	tpl := i.layout.TemplatesPath(string(arch), defs.BaseDir, inBackend)

	data, err := fs.ReadFile(i.templates, tpl)
	if err == nil {
		return tpl, string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return tpl, "", fmt.Errorf("%w: %s: %v", config.ErrConfigRead, tpl, err)
	}

	data, err = os.ReadFile(i.layout.Path(i.root, rel))
	if errors.Is(err, fs.ErrNotExist) {
		return rel, "", nil
	}
	if err != nil {
		return rel, "", fmt.Errorf("%w: %s: %v", config.ErrConfigRead, rel, err)
	}
	return rel, string(data), nil
}

package installer

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/template"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// ProgressBar receives stage progress. ui.ProgressBar satisfies it.
type ProgressBar interface {
	SetTitle(title string)
	Increment(n int)
	Done()
}

// Options configures an Installer.
type Options struct {
	Root    string           // Skeleton root directory.
	Layout  *config.Layout   // Paths and markers; defaults when nil.
	Catalog *catalog.Catalog // Feature groups offered and installed.

	// KeepInstaller skips self-removal, leaving installer/ in place.
	KeepInstaller bool

	// Templates overrides the template source. When nil the installer
	// directory on disk is used.
	Templates fs.FS
}

// Result summarizes one installation run.
type Result struct {
	Selection models.Selection
	Features  []catalog.FeatureGroup
	Stages    []StageResult
	// Removed reports whether self-removal ran.
	Removed bool
}

// Succeeded reports whether every stage that ran reported success.
func (r *Result) Succeeded() bool {
	for _, s := range r.Stages {
		if !s.OK {
			return false
		}
	}
	return true
}

// Warnings returns the warnings of all stages in order.
func (r *Result) Warnings() []string {
	var out []string
	for _, s := range r.Stages {
		out = append(out, s.Warnings...)
	}
	return out
}

// Files returns the number of files written by all stages.
func (r *Result) Files() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Files
	}
	return n
}

// Installer installs a selection into one skeleton checkout.
type Installer struct {
	root      string
	layout    *config.Layout
	catalog   *catalog.Catalog
	keep      bool
	templates fs.FS
	logger    *slog.Logger
}

// New creates an Installer. The catalog is required.
func New(opts Options, logger *slog.Logger) (*Installer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog", ErrMissingDependency)
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	layout := opts.Layout
	if layout == nil {
		layout = config.NewDefaultLayout()
	}
	templates := opts.Templates
	if templates == nil {
		templates = os.DirFS(layout.InstallerPath(root))
	}

	return &Installer{
		root:      root,
		layout:    layout,
		catalog:   opts.Catalog,
		keep:      opts.KeepInstaller,
		templates: templates,
		logger:    logger,
	}, nil
}

// Root returns the absolute skeleton root.
func (i *Installer) Root() string {
	return i.root
}

// Layout returns the layout the installer works with.
func (i *Installer) Layout() *config.Layout {
	return i.layout
}

// Catalog returns the injected feature catalog.
func (i *Installer) Catalog() *catalog.Catalog {
	return i.catalog
}

// Preflight fails with ErrAlreadyInstalled when the installer directory
// is missing. Call it before prompting.
func (i *Installer) Preflight() error {
	dir := i.layout.InstallerPath(i.root)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrAlreadyInstalled, dir)
	}
	return nil
}

// Install runs every stage for sel. Stages run in sequence; the first
// fatal error is returned as a *StageError together with the results of
// the stages that completed. Self-removal runs only when every earlier
// stage reported success. progress may be nil.
func (i *Installer) Install(ctx context.Context, sel models.Selection, progress ProgressBar) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !sel.Architecture.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidArchitecture, sel.Architecture)
	}
	if err := i.Preflight(); err != nil {
		return nil, err
	}
	groups, err := i.catalog.Select(sel.Features)
	if err != nil {
		return nil, err
	}

	res := &Result{Selection: sel, Features: groups}
	r := &run{
		Installer: i,
		sel:       sel,
		groups:    groups,
		mat:       template.NewMaterializer(i.templates, i.logger),
	}

	i.logger.Info("installing skeleton",
		"root", i.root,
		"architecture", sel.Architecture,
		"features", sel.Features,
	)

	for _, st := range r.stages() {
		if err := ctx.Err(); err != nil {
			return res, &StageError{Stage: st.stage, Err: err}
		}
		if st.stage == StageCleanup && !res.Succeeded() {
			i.logger.Warn("self-removal skipped after unsuccessful stage")
			break
		}
		if progress != nil {
			progress.SetTitle(st.stage.Title())
		}

		sr, err := st.fn(ctx)
		if err != nil {
			i.logger.Error("stage failed", "stage", st.stage, "error", err)
			return res, &StageError{Stage: st.stage, Err: err}
		}
		sr.Stage = st.stage
		res.Stages = append(res.Stages, sr)
		for _, w := range sr.Warnings {
			i.logger.Warn("stage warning", "stage", st.stage, "warning", w)
		}
		if st.stage == StageCleanup {
			res.Removed = sr.OK
		}
		if progress != nil {
			progress.Increment(1)
		}
	}
	if progress != nil {
		progress.Done()
	}

	i.logger.Info("installation complete",
		"files", res.Files(),
		"warnings", len(res.Warnings()),
		"installer_removed", res.Removed,
	)
	return res, nil
}

// StageCount returns how many stages Install runs for arch.
func (i *Installer) StageCount(arch models.Architecture) int {
	r := &run{Installer: i, sel: models.Selection{Architecture: arch}}
	return len(r.stages())
}

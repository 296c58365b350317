package installer

import (
	"context"
	"path"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/cleanup"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/defs"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/manifest"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/patch"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/structure"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/template"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/models"
)

// run holds the state of one Install call.
type run struct {
	*Installer
	sel    models.Selection
	groups []catalog.FeatureGroup
	mat    *template.Materializer
}

type stageFunc func(ctx context.Context) (StageResult, error)

type stageStep struct {
	stage Stage
	fn    stageFunc
}

func (r *run) stages() []stageStep {
	steps := []stageStep{
		{StageManifest, r.updateManifests},
		{StageTemplates, r.materializeTemplates},
		{StageRegistration, r.registerFeatures},
	}
	if r.sel.Architecture == models.ArchLayered {
		steps = append(steps, stageStep{StageStructure, r.restructure})
	}
	if !r.keep {
		steps = append(steps, stageStep{StageCleanup, r.removeInstaller})
	}
	return steps
}

func (r *run) updateManifests(_ context.Context) (StageResult, error) {
	l := r.layout
	u := manifest.NewUpdater(l.Path(r.root, l.RootManifest), l.Path(r.root, l.BackendManifest), l.ExcludedPackage, r.logger)
	if _, err := u.Update(r.groups); err != nil {
		return StageResult{}, err
	}
	return StageResult{OK: true}, nil
}

// materializeTemplates copies the architecture's base tree, every selected
// feature's tree and every selected feature's config file.
func (r *run) materializeTemplates(ctx context.Context) (StageResult, error) {
	l := r.layout
	arch := string(r.sel.Architecture)
	backend := l.Path(r.root, l.BackendDir)
	sr := StageResult{OK: true}

	base, err := r.mat.Materialize(ctx, l.TemplatesPath(arch, defs.BaseDir), backend)
	if err != nil {
		return sr, err
	}
	sr.Files += base.Count()

	for _, g := range r.groups {
		if err := ctx.Err(); err != nil {
			return sr, err
		}
		feat, err := r.mat.Materialize(ctx, l.TemplatesPath(arch, defs.FeaturesDir, g.Key), backend)
		if err != nil {
			return sr, err
		}
		sr.Files += feat.Count()

		if g.ConfigTemplate == "" {
			continue
		}
		src := l.TemplatesPath(arch, defs.ConfigDir, g.ConfigTemplate)
		dest := l.Path(r.root, path.Join(l.AutoloadConfigDir, g.ConfigTemplate))
		copied, err := r.mat.CopyFile(src, dest)
		if err != nil {
			return sr, err
		}
		if copied {
			sr.Files++
		}
	}
	return sr, nil
}

func (r *run) registerFeatures(_ context.Context) (StageResult, error) {
	l := r.layout
	p := patch.NewPatcher(l.Markers, r.logger)
	sr := StageResult{OK: true}

	providers, err := p.PatchProviders(l.Path(r.root, l.ConfigFile), r.groups)
	if err != nil {
		return sr, err
	}
	pipeline, err := p.PatchPipeline(l.Path(r.root, l.PipelineFile), r.groups)
	if err != nil {
		return sr, err
	}

	for _, res := range []*patch.Result{providers, pipeline} {
		if res.Changed() {
			sr.Files++
		}
		for _, w := range res.Warnings {
			sr.Warnings = append(sr.Warnings, w.String())
		}
	}
	return sr, nil
}

func (r *run) restructure(ctx context.Context) (StageResult, error) {
	s := structure.NewStructurer(r.root, r.layout, r.mat, r.logger)
	res, err := s.Apply(ctx)
	if err != nil {
		return StageResult{}, err
	}
	sr := StageResult{OK: true, Files: res.Files}
	for _, w := range res.Warnings {
		sr.Warnings = append(sr.Warnings, w.String())
	}
	return sr, nil
}

func (r *run) removeInstaller(_ context.Context) (StageResult, error) {
	c := cleanup.NewCleaner(r.root, r.layout, r.logger)
	res, err := c.Run(r.sel.Architecture)
	if err != nil {
		return StageResult{}, err
	}
	return StageResult{OK: true, Files: len(res.WrittenDocs), Warnings: res.Warnings}, nil
}

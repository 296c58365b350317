package patch

import (
	"io"
	"log/slog"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"
	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
)

const (
	lineIndent = "    "

	// ProviderHeader opens the block of feature providers in the
	// config-aggregation file.
	ProviderHeader = lineIndent + "// Optional feature providers"
)

// ProviderLines returns the provider block for groups: the header line
// followed by one class-constant line per provider, in the given order.
// It returns nil when no group has a provider.
func ProviderLines(groups []catalog.FeatureGroup) []string {
	var lines []string
	for _, g := range groups {
		if g.HasProvider() {
			lines = append(lines, lineIndent+g.Provider.ClassConstant()+",")
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return append([]string{ProviderHeader}, lines...)
}

// MiddlewareLines buckets the groups' middleware by position. Each entry
// is a comment line followed by the pipe call.
func MiddlewareLines(groups []catalog.FeatureGroup) map[catalog.Position][]string {
	buckets := make(map[catalog.Position][]string)
	for _, g := range groups {
		if !g.HasMiddleware() {
			continue
		}
		buckets[g.Position] = append(buckets[g.Position],
			lineIndent+"// "+g.Comment(),
			lineIndent+"$app->pipe("+g.Middleware.ClassConstant()+");",
		)
	}
	return buckets
}

// Patcher registers feature providers and middleware in the skeleton's
// configuration files.
type Patcher struct {
	markers config.Markers
	logger  *slog.Logger
}

// NewPatcher creates a Patcher splicing at the given markers.
func NewPatcher(markers config.Markers, logger *slog.Logger) *Patcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Patcher{markers: markers, logger: logger}
}

// PatchProviders inserts the provider block for groups before the provider
// marker of the file at path. Providers already registered are skipped, so
// a repeated run leaves the file unchanged. With no providers the file is
// not read.
func (p *Patcher) PatchProviders(path string, groups []catalog.FeatureGroup) (*Result, error) {
	res := &Result{File: path}
	if len(ProviderLines(groups)) == 0 {
		return res, nil
	}

	content, perm, err := readTarget(path)
	if err != nil {
		return nil, err
	}
	pending := unregisteredProviders(content, groups)
	if len(pending) == 0 {
		p.logger.Debug("providers already registered", "file", path)
		return res, nil
	}
	lines := ProviderLines(pending)
	if ContainsLine(content, ProviderHeader) {
		lines = lines[1:]
	}
	out, ok := InsertBefore(content, p.markers.Provider, lines)
	if !ok {
		p.warn(res, MarkerWarning{File: path, Marker: p.markers.Provider, Purpose: "providers"})
		return res, nil
	}
	if err := writeTarget(path, out, perm); err != nil {
		return nil, err
	}
	res.Inserted = len(pending)
	p.logger.Debug("providers registered", "file", path, "count", res.Inserted)
	return res, nil
}

// PatchPipeline inserts each position's middleware before that position's
// marker in the file at path. Positions are processed in pipeline order;
// a missing marker skips only its own position. Middleware already piped
// is skipped. With no middleware the file is not read.
func (p *Patcher) PatchPipeline(path string, groups []catalog.FeatureGroup) (*Result, error) {
	res := &Result{File: path}
	if len(MiddlewareLines(groups)) == 0 {
		return res, nil
	}

	content, perm, err := readTarget(path)
	if err != nil {
		return nil, err
	}
	buckets := MiddlewareLines(unpipedMiddleware(content, groups))
	for _, pos := range catalog.Positions() {
		lines := buckets[pos]
		if len(lines) == 0 {
			continue
		}
		marker := p.markers.ForPosition(string(pos))
		out, ok := InsertBefore(content, marker, lines)
		if !ok {
			p.warn(res, MarkerWarning{File: path, Marker: marker, Purpose: "middleware (" + string(pos) + ")"})
			continue
		}
		content = out
		res.Inserted += len(lines) / 2
	}

	if res.Inserted == 0 {
		return res, nil
	}
	if err := writeTarget(path, content, perm); err != nil {
		return nil, err
	}
	p.logger.Debug("middleware registered", "file", path, "count", res.Inserted)
	return res, nil
}

// unregisteredProviders returns the groups whose provider line is not yet
// in content.
func unregisteredProviders(content string, groups []catalog.FeatureGroup) []catalog.FeatureGroup {
	var out []catalog.FeatureGroup
	for _, g := range groups {
		if g.HasProvider() && !ContainsLine(content, lineIndent+g.Provider.ClassConstant()+",") {
			out = append(out, g)
		}
	}
	return out
}

// unpipedMiddleware returns the groups whose pipe call is not yet in content.
func unpipedMiddleware(content string, groups []catalog.FeatureGroup) []catalog.FeatureGroup {
	var out []catalog.FeatureGroup
	for _, g := range groups {
		if g.HasMiddleware() && !ContainsLine(content, lineIndent+"$app->pipe("+g.Middleware.ClassConstant()+");") {
			out = append(out, g)
		}
	}
	return out
}

func (p *Patcher) warn(res *Result, w MarkerWarning) {
	res.Warnings = append(res.Warnings, w)
	p.logger.Warn("marker not found", "file", w.File, "marker", w.Marker, "skipped", w.Purpose)
}

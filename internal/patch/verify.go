package patch

import "github.com/MethorZ/mezzio-hexagonal-skeleton/internal/catalog"

// VerifyProviders reports the warning PatchProviders would emit for
// content, without writing anything. file only labels the warning.
func (p *Patcher) VerifyProviders(file, content string, groups []catalog.FeatureGroup) []MarkerWarning {
	if len(ProviderLines(groups)) == 0 || ContainsLine(content, p.markers.Provider) {
		return nil
	}
	return []MarkerWarning{{File: file, Marker: p.markers.Provider, Purpose: "providers"}}
}

// VerifyPipeline reports every position marker PatchPipeline would miss
// in content, in pipeline order.
func (p *Patcher) VerifyPipeline(file, content string, groups []catalog.FeatureGroup) []MarkerWarning {
	buckets := MiddlewareLines(groups)

	var out []MarkerWarning
	for _, pos := range catalog.Positions() {
		if len(buckets[pos]) == 0 {
			continue
		}
		marker := p.markers.ForPosition(string(pos))
		if !ContainsLine(content, marker) {
			out = append(out, MarkerWarning{File: file, Marker: marker, Purpose: "middleware (" + string(pos) + ")"})
		}
	}
	return out
}

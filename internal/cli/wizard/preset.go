package wizard

import (
	"slices"
)

// PresetPrompter answers questions without user interaction, from the
// --arch and --with flags. Unset values answer with the default.
type PresetPrompter struct {
	arch     string
	features []string
	explicit bool
}

// NewPresetPrompter creates a PresetPrompter. When features is non-nil
// exactly those features are accepted; when nil every feature takes its
// default.
func NewPresetPrompter(arch string, features []string) *PresetPrompter {
	return &PresetPrompter{arch: arch, features: features, explicit: features != nil}
}

// Ask returns the preset answer for q.
func (p *PresetPrompter) Ask(q *Question) (string, error) {
	if q.ID == ArchitectureID {
		return p.arch, nil
	}
	if !p.explicit {
		return "", nil
	}
	if slices.Contains(p.features, q.ID) {
		return answerYes, nil
	}
	return answerNo, nil
}

package installer

// Stage identifies one step of the installation pipeline.
type Stage string

const (
	StageManifest     Stage = "manifest"
	StageTemplates    Stage = "templates"
	StageRegistration Stage = "registration"
	StageStructure    Stage = "structure"
	StageCleanup      Stage = "cleanup"
)

// Title returns the progress line shown while the stage runs.
func (s Stage) Title() string {
	switch s {
	case StageManifest:
		return "Updating composer manifests"
	case StageTemplates:
		return "Copying templates"
	case StageRegistration:
		return "Registering providers and middleware"
	case StageStructure:
		return "Restructuring into layered modules"
	case StageCleanup:
		return "Removing installer"
	}
	return string(s)
}

// StageResult is the outcome of one completed stage. OK is the explicit
// success flag later stages are gated on.
type StageResult struct {
	Stage    Stage
	OK       bool
	Files    int
	Warnings []string
}

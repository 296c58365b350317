package models

import "strings"

// Architecture is the structural variant of the generated project.
type Architecture string

const (
	// ArchFlat keeps all application code in a single App module (default).
	ArchFlat Architecture = "flat"

	// ArchLayered splits the application into a shared kernel and
	// bounded-context modules with ports and adapters.
	ArchLayered Architecture = "layered"
)

// DefaultArchitecture is used whenever an answer is empty or unrecognized.
const DefaultArchitecture = ArchFlat

// ValidArchitectures returns all valid architecture values.
func ValidArchitectures() []Architecture {
	return []Architecture{ArchFlat, ArchLayered}
}

// IsValid checks if the architecture is a known value.
func (a Architecture) IsValid() bool {
	switch a {
	case ArchFlat, ArchLayered:
		return true
	}
	return false
}

// Label returns the human-readable name shown in prompts and summaries.
func (a Architecture) Label() string {
	switch a {
	case ArchLayered:
		return "Layered (hexagonal)"
	default:
		return "Flat"
	}
}

// ParseArchitecture maps a raw console answer to an Architecture.
// Only "l" or "layered" (case-insensitive) select the layered variant;
// every other answer, including the empty one, falls back to the default.
func ParseArchitecture(answer string) Architecture {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "l", string(ArchLayered):
		return ArchLayered
	default:
		return DefaultArchitecture
	}
}

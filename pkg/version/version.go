// Package version exposes build metadata of the installer binary.
package version

import "fmt"

// Build-time variables injected via -ldflags:
//
//	go build -ldflags "-X github.com/MethorZ/mezzio-hexagonal-skeleton/pkg/version.Version=v1.2.0"
var (
	Version = "v0.0.0-dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetFullVersion returns version, commit and build date on one line.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

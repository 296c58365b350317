package installer

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot locates the skeleton root by searching start and its parents
// for a directory containing installerDir. It returns the absolute path
// of the first match.
func FindRoot(start, installerDir string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(installerDir))); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s directory in %s or any parent directory", ErrAlreadyInstalled, installerDir, start)
		}
		dir = parent
	}
}

// FindRootOrCurrent is like FindRoot but falls back to start itself, so
// that the caller reports ErrAlreadyInstalled for the directory the user
// named.
func FindRootOrCurrent(start, installerDir string) (string, error) {
	if root, err := FindRoot(start, installerDir); err == nil {
		return root, nil
	}
	return filepath.Abs(start)
}

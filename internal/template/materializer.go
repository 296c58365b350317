package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Result lists the files written by one materialization, as slash
// separated paths relative to the destination directory.
type Result struct {
	Files []string
}

// Count returns the number of files written.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Files)
}

// Materializer copies template trees from a source filesystem.
// In production the fs.FS is rooted at the installer directory; in tests
// use testing/fstest.MapFS.
type Materializer struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewMaterializer creates a Materializer reading from fsys.
func NewMaterializer(fsys fs.FS, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Materializer{fsys: fsys, logger: logger}
}

// Materialize copies the tree under srcDir to destDir. See Materialize.
func (m *Materializer) Materialize(ctx context.Context, srcDir, destDir string) (*Result, error) {
	res, err := Materialize(ctx, m.fsys, srcDir, destDir)
	if err != nil {
		return res, err
	}
	if res.Count() == 0 {
		m.logger.Debug("template tree empty or missing", "source", srcDir)
	} else {
		m.logger.Debug("template tree materialized", "source", srcDir, "dest", destDir, "files", res.Count())
	}
	return res, nil
}

// CopyFile copies a single template file. See CopyFile.
func (m *Materializer) CopyFile(name, dest string) (bool, error) {
	copied, err := CopyFile(m.fsys, name, dest)
	if err == nil && !copied {
		m.logger.Debug("template file missing", "source", name)
	}
	return copied, err
}

// Materialize recursively copies every regular file under srcDir in src to
// destDir, keeping relative paths and overwriting existing files. Missing
// directories are created. A missing srcDir is not an error and yields an
// empty result. The context is checked before each file.
func Materialize(ctx context.Context, src fs.FS, srcDir, destDir string) (*Result, error) {
	res := &Result{}
	srcDir = path.Clean(srcDir)

	info, err := fs.Stat(src, srcDir)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("template stat %q: %w", srcDir, err)
	}
	if !info.IsDir() {
		return res, fmt.Errorf("%w: %s", ErrNotDirectory, srcDir)
	}

	destDir = filepath.Clean(destDir)
	walkErr := fs.WalkDir(src, srcDir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Directories are created on demand; symlinks and devices are skipped.
		if !entry.Type().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(p, srcDir+"/")
		if srcDir == "." {
			rel = p
		}
		if err := validateDestPath(destDir, rel); err != nil {
			return err
		}

		data, err := fs.ReadFile(src, p)
		if err != nil {
			return fmt.Errorf("template read %q: %w", p, err)
		}
		if err := writeFile(filepath.Join(destDir, filepath.FromSlash(rel)), data); err != nil {
			return err
		}
		res.Files = append(res.Files, rel)
		return nil
	})
	return res, walkErr
}

// CopyFile copies the file name from src to dest, creating dest's parent
// directory. It reports false without error when name does not exist.
func CopyFile(src fs.FS, name, dest string) (bool, error) {
	if !fs.ValidPath(name) {
		return false, fmt.Errorf("%w: invalid source %q", ErrPathTraversal, name)
	}
	data, err := fs.ReadFile(src, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("template read %q: %w", name, err)
	}
	if err := writeFile(dest, data); err != nil {
		return false, err
	}
	return true, nil
}

func writeFile(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("template mkdir %q: %w", dir, err)
	}

	perm := fs.FileMode(0o644)
	if strings.HasSuffix(dest, ".sh") {
		perm = 0o755
	}
	if err := os.WriteFile(dest, data, perm); err != nil {
		return fmt.Errorf("template write %q: %w", dest, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(dest, perm); err != nil {
		return fmt.Errorf("template chmod %q: %w", dest, err)
	}
	return nil
}

// validateDestPath ensures relPath stays inside destDir.
func validateDestPath(destDir, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	absPath := filepath.Join(absDest, cleaned)
	if !strings.HasPrefix(absPath, absDest+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes %s", ErrPathTraversal, relPath, destDir)
	}
	return nil
}

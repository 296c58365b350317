// Package patch splices registration lines into the skeleton's PHP
// configuration files. Lines are inserted immediately before literal
// marker lines; a marker that cannot be found is reported as a warning
// and leaves the file untouched.
package patch

import (
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/MethorZ/mezzio-hexagonal-skeleton/internal/config"
)

// MarkerWarning reports a marker line that was not found in a file.
type MarkerWarning struct {
	File   string
	Marker string
	// Purpose names what could not be inserted, e.g. "providers" or
	// "middleware (early)".
	Purpose string
}

// String renders the warning for logs and console output.
func (w MarkerWarning) String() string {
	return fmt.Sprintf("%s: marker %q not found, %s not registered", w.File, strings.TrimSpace(w.Marker), w.Purpose)
}

// Result reports the outcome of patching one file.
type Result struct {
	File     string
	Inserted int
	Warnings []MarkerWarning
}

// Changed reports whether the file was rewritten.
func (r *Result) Changed() bool {
	return r != nil && r.Inserted > 0
}

// InsertBefore inserts lines immediately before the first line of content
// that equals marker, ignoring trailing whitespace. Inserted lines take
// the CRLF ending when content uses it. It reports false and returns
// content unchanged when the marker is absent.
func InsertBefore(content, marker string, lines []string) (string, bool) {
	all := strings.Split(content, "\n")
	idx := findLine(all, marker)
	if idx < 0 {
		return content, false
	}
	return strings.Join(slices.Insert(all, idx, withEnding(content, lines)...), "\n"), true
}

// ReplaceLine replaces the first line of content equal to line, ignoring
// trailing whitespace, with replacement.
func ReplaceLine(content, line string, replacement []string) (string, bool) {
	all := strings.Split(content, "\n")
	idx := findLine(all, line)
	if idx < 0 {
		return content, false
	}
	return strings.Join(slices.Replace(all, idx, idx+1, withEnding(content, replacement)...), "\n"), true
}

// ContainsLine reports whether content holds line, ignoring trailing whitespace.
func ContainsLine(content, line string) bool {
	return findLine(strings.Split(content, "\n"), line) >= 0
}

func findLine(lines []string, want string) int {
	want = trimRight(want)
	for i, l := range lines {
		if trimRight(l) == want {
			return i
		}
	}
	return -1
}

func trimRight(s string) string {
	return strings.TrimRight(s, " \t\r")
}

func withEnding(content string, lines []string) []string {
	if !strings.Contains(content, "\r\n") {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\r"
	}
	return out
}

// readTarget reads a file to patch. A missing or unreadable target is a
// configuration read failure.
func readTarget(path string) (string, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s: %w", config.ErrConfigRead, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s: %w", config.ErrConfigRead, path, err)
	}
	return string(data), info.Mode().Perm(), nil
}

func writeTarget(path, content string, perm fs.FileMode) error {
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReplaceLineInFile applies ReplaceLine to the file at path. The file is
// rewritten only when the line is found.
func ReplaceLineInFile(path, line string, replacement []string) (bool, error) {
	content, perm, err := readTarget(path)
	if err != nil {
		return false, err
	}
	out, ok := ReplaceLine(content, line, replacement)
	if !ok {
		return false, nil
	}
	return true, writeTarget(path, out, perm)
}

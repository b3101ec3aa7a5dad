// Package fs resolves target paths and reads and writes the files patches
// are applied to.
package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sokinpui/tidydiff.go/internal/ui"
)

// Actions recorded for a target path.
const (
	ActionCreate = "create"
	ActionModify = "modify"
)

// PathResolver maps the relative paths named in diff blocks onto a list of
// search directories.
type PathResolver struct {
	dirs []string
}

// NewPathResolver searches dirs in order. Directories that cannot be made
// absolute are skipped; with none left the working directory is used.
func NewPathResolver(dirs []string) *PathResolver {
	r := &PathResolver{}
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			ui.Warning("Ignoring lookup directory %q: %v", dir, err)
			continue
		}
		r.dirs = append(r.dirs, abs)
	}
	if len(r.dirs) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			panic(fmt.Sprintf("cannot determine working directory: %v", err))
		}
		r.dirs = []string{wd}
	}
	return r
}

// Resolve returns the first existing match for path, or the place a new
// file would be created in the first search directory.
func (r *PathResolver) Resolve(path string) string {
	if found := r.ResolveExisting(path); found != "" {
		return found
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.dirs[0], path)
}

// ResolveExisting returns the first existing match for path, or "".
func (r *PathResolver) ResolveExisting(path string) string {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		candidates = candidates[:0]
		for _, dir := range r.dirs {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}
	for _, c := range candidates {
		if exists(c) {
			return c
		}
	}
	return ""
}

// Targets describes what writing a set of files will do to the disk.
type Targets struct {
	// Actions maps every path to ActionCreate or ActionModify.
	Actions map[string]string
	// Dirs are the missing parent directories, sorted.
	Dirs []string
}

// Classify inspects paths before anything is written.
func Classify(paths []string) Targets {
	t := Targets{Actions: make(map[string]string, len(paths))}
	for _, path := range paths {
		if exists(path) {
			t.Actions[path] = ActionModify
			continue
		}
		t.Actions[path] = ActionCreate
		if dir := filepath.Dir(path); !exists(dir) && !slices.Contains(t.Dirs, dir) {
			t.Dirs = append(t.Dirs, dir)
		}
	}
	slices.Sort(t.Dirs)
	return t
}

// CreateDirs creates every directory in t.Dirs.
func (t Targets) CreateDirs() error {
	if len(t.Dirs) == 0 {
		return nil
	}
	ui.Info("\nCreating directories...")
	for _, dir := range t.Dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %q: %w", dir, err)
		}
		ui.Success("  -> Created: %s", dir)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFileIfExists returns the content of path, or "" if it does not exist.
func ReadFileIfExists(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// HashString returns the hex SHA-256 of content.
func HashString(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Package state keeps the undo history of applied patches in a JSON file.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sokinpui/tidydiff.go/internal/fs"
	"github.com/sokinpui/tidydiff.go/model"
)

const (
	stateDirName  = ".tidydiff"
	stateFileName = "state.json"
)

// Operation is one patch applied to one file.
type Operation struct {
	Path   string `json:"path"`
	Action string `json:"action"`
	// Diff is the diff that was applied; undo applies its reverse.
	Diff       string `json:"diff"`
	BeforeHash string `json:"before_hash"`
	AfterHash  string `json:"after_hash"`
}

// Entry is every operation of one run.
type Entry struct {
	Timestamp  int64       `json:"timestamp"`
	Operations []Operation `json:"operations"`
}

// file is the on-disk layout. Entries before Applied are live; the rest
// have been undone and can be redone.
type file struct {
	Entries []Entry `json:"entries"`
	Applied int     `json:"applied"`
}

// Store is the history for one project.
type Store struct {
	path string
	data file
}

// OpenDefault opens the store in .tidydiff at the root of the enclosing git
// repository, or in the working directory outside of one.
func OpenDefault() (*Store, error) {
	root, err := gitRoot()
	if err != nil {
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("could not get current working directory: %w", err)
		}
	}
	return Open(filepath.Join(root, stateDirName))
}

func gitRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Open loads the store kept in dir, creating dir if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create state directory: %w", err)
	}
	s := &Store{path: filepath.Join(dir, stateFileName)}

	raw, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("could not read state file: %w", err)
	case len(bytes.TrimSpace(raw)) == 0:
		return s, nil
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("invalid state file %s: %w", s.path, err)
	}
	if s.data.Applied < 0 || s.data.Applied > len(s.data.Entries) {
		return nil, fmt.Errorf("invalid state file %s: applied count %d out of range", s.path, s.data.Applied)
	}
	return s, nil
}

// Path is the location of the state file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("could not write state file: %w", err)
	}
	return nil
}

// Record appends a run to the history. Undone runs can no longer be redone.
func (s *Store) Record(ops []Operation) error {
	s.data.Entries = append(s.data.Entries[:s.data.Applied], Entry{
		Timestamp:  time.Now().UTC().Unix(),
		Operations: ops,
	})
	s.data.Applied++
	return s.save()
}

// Undo steps back over the latest live run and returns its operations, or
// nil when there is nothing to undo.
func (s *Store) Undo() ([]Operation, error) {
	if s.data.Applied == 0 {
		return nil, nil
	}
	s.data.Applied--
	return s.data.Entries[s.data.Applied].Operations, s.save()
}

// Redo steps forward over the earliest undone run and returns its
// operations, or nil when there is nothing to redo.
func (s *Store) Redo() ([]Operation, error) {
	if s.data.Applied == len(s.data.Entries) {
		return nil, nil
	}
	s.data.Applied++
	return s.data.Entries[s.data.Applied-1].Operations, s.save()
}

// OperationsFor builds the history records of the changes that were
// written. actions maps each path to fs.ActionCreate or fs.ActionModify;
// missing paths count as modified.
func OperationsFor(changes []model.FileChange, written []string, actions map[string]string) []Operation {
	var ops []Operation
	for _, change := range changes {
		if !slices.Contains(written, change.Path) {
			continue
		}
		action := actions[change.Path]
		if action == "" {
			action = fs.ActionModify
		}
		ops = append(ops, Operation{
			Path:       change.Path,
			Action:     action,
			Diff:       change.Diff,
			BeforeHash: fs.HashString(change.Before),
			AfterHash:  fs.HashString(change.Content),
		})
	}
	slices.SortFunc(ops, func(a, b Operation) int {
		return strings.Compare(a.Path, b.Path)
	})
	return ops
}

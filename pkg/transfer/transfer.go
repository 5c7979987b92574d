// Package transfer moves full workspace contents through a single JSON
// document, with conflict records for interactive import resolution.
package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"tableflip.dev/inbox/pkg/folder"
	"tableflip.dev/inbox/pkg/store"
	"tableflip.dev/inbox/pkg/task"
)

// Snapshot is the export file shape: the full post-migration contents of
// both collections.
type Snapshot struct {
	Tasks   []*task.Task     `json:"tasks"`
	Folders []*folder.Folder `json:"folders"`
}

// ImportError reports a malformed import payload.
type ImportError struct {
	Cause error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("transfer: malformed import payload: %v", e.Cause)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Conflict surfaces an incoming record whose id already exists with
// different contents. It is data, not a failure: the caller picks a
// resolution per conflict.
type Conflict struct {
	Type     string `json:"type"` // "task" or "folder"
	ID       string `json:"id"`
	Original any    `json:"original"`
	New      any    `json:"new"`
}

// Choice selects which side of a conflict wins.
type Choice string

const (
	KeepOriginal Choice = "original"
	KeepNew      Choice = "new"
)

// Export captures the current workspace contents.
func Export(s *store.Store) Snapshot {
	return Snapshot{
		Tasks:   s.Tasks.All(),
		Folders: s.Folders.All(),
	}
}

// Filename is the conventional export file name for a workspace.
func Filename(workspace string) string {
	return fmt.Sprintf("%s-data.json", workspace)
}

// WriteFile pretty-prints the snapshot to path.
func WriteFile(snap Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("transfer: encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("transfer: write %s: %w", path, err)
	}
	return nil
}

// ReadFile parses an export file. Unknown top-level keys are ignored.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, &ImportError{Cause: err}
	}
	return Parse(data)
}

// Parse decodes the export shape from raw JSON.
func Parse(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, &ImportError{Cause: err}
	}
	return snap, nil
}

// Import inserts every record whose id is free and collects a conflict
// for every id that exists with different contents. Records identical to
// what is already stored are skipped silently. Validation failures on
// fresh records abort the import.
func Import(s *store.Store, snap Snapshot) ([]Conflict, error) {
	conflicts := make([]Conflict, 0)

	for _, tk := range snap.Tasks {
		if tk == nil {
			continue
		}
		existing, err := s.Tasks.Get(tk.ID)
		if err != nil {
			if err := s.Tasks.Insert(tk); err != nil {
				return nil, err
			}
			continue
		}
		if tasksEqual(existing, tk) {
			continue
		}
		conflicts = append(conflicts, Conflict{Type: "task", ID: tk.ID, Original: existing, New: tk})
	}

	for _, f := range snap.Folders {
		if f == nil {
			continue
		}
		existing, err := s.Folders.Get(f.ID)
		if err != nil {
			if err := s.Folders.Insert(f); err != nil {
				return nil, err
			}
			continue
		}
		if foldersEqual(existing, f) {
			continue
		}
		conflicts = append(conflicts, Conflict{Type: "folder", ID: f.ID, Original: existing, New: f})
	}

	return conflicts, nil
}

// Resolve settles one conflict. KeepOriginal is a no-op; KeepNew upserts
// the incoming record.
func Resolve(s *store.Store, c Conflict, choice Choice) error {
	if choice != KeepNew {
		return nil
	}
	switch c.Type {
	case "task":
		tk, ok := c.New.(*task.Task)
		if !ok {
			return fmt.Errorf("transfer: conflict %s: unexpected record type", c.ID)
		}
		return s.Tasks.Upsert(tk)
	case "folder":
		f, ok := c.New.(*folder.Folder)
		if !ok {
			return fmt.Errorf("transfer: conflict %s: unexpected record type", c.ID)
		}
		return s.Folders.Upsert(f)
	default:
		return fmt.Errorf("transfer: conflict %s: unknown type %q", c.ID, c.Type)
	}
}

// tasksEqual ignores the schema stamp: an old export re-imported after a
// migration should not read as a conflict.
func tasksEqual(a, b *task.Task) bool {
	ca, cb := *a, *b
	ca.Schema, cb.Schema = 0, 0
	return reflect.DeepEqual(ca, cb)
}

func foldersEqual(a, b *folder.Folder) bool {
	ca, cb := *a, *b
	ca.Schema, cb.Schema = 0, 0
	return reflect.DeepEqual(ca, cb)
}

// Package store persists task and folder documents in a named, lazily
// created workspace directory backed by diskv, one JSON value per key.
// Reads pass stored documents through the schema migration chain before
// they reach callers; writes validate against the current schema.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/inbox/pkg/folder"
	"tableflip.dev/inbox/pkg/schema"
	"tableflip.dev/inbox/pkg/task"
)

// Store is a handle to one workspace database exposing the tasks and
// folders collections.
type Store struct {
	name string
	path string

	Tasks   *Collection[task.Task, *task.Task]
	Folders *Collection[folder.Folder, *folder.Folder]
}

// Open creates (if necessary) and opens the workspace directory
// <base>/<name>/ with one diskv bucket per collection. The returned
// handle is fully initialized; Open never publishes a partial store.
func Open(cfg Config, name string) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if name == "" {
		name = cfg.Workspace()
	}
	path := filepath.Join(cfg.BasePath(), name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure workspace path: %w", err)
	}

	s := &Store{name: name, path: path}
	s.Tasks = newCollection[task.Task, *task.Task](openBucket(path, "tasks"), schema.Tasks)
	s.Folders = newCollection[folder.Folder, *folder.Folder](openBucket(path, "folders"), schema.Folders)
	return s, nil
}

func openBucket(path, collection string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     filepath.Join(path, collection),
		Transform:    func(string) []string { return nil }, // flat: one file per id
		CacheSizeMax: 1024 * 1024,                          // 1MB
	})
}

// Name is the workspace this store is bound to.
func (s *Store) Name() string {
	return s.name
}

// Path is the workspace directory on disk.
func (s *Store) Path() string {
	return s.path
}

func isMissingKey(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

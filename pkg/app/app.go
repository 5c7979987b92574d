// Package app provides high-level operations over the task inbox.
// It wraps the store, query engine, and transfer/report collaborators so
// CLIs and UIs can share logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/inbox/pkg/folder"
	"tableflip.dev/inbox/pkg/query"
	"tableflip.dev/inbox/pkg/store"
	"tableflip.dev/inbox/pkg/task"
)

// Service exposes the inbox operations for one open workspace.
type Service struct {
	Store *store.Store
}

func (s *Service) guard() error {
	if s.Store == nil {
		return errors.New("app: no store configured")
	}
	return nil
}

// NewTaskID generates an opaque task id.
func NewTaskID() string {
	return fmt.Sprintf("TASK-%s", strings.ToUpper(uuid.NewString()[:8]))
}

// AddTask files a new pending task. The reference code is rebuilt from its
// parts so the number is zero-padded on save.
func (s *Service) AddTask(ctx context.Context, from, service string, code task.Code, date time.Time, details, folderID string) (*task.Task, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	tk := task.New(from, service, code.Compose(), date)
	tk.ID = NewTaskID()
	tk.Details = details
	if folderID != "" {
		tk.Folder = folderID
	}
	if err := s.Store.Tasks.Insert(tk); err != nil {
		return nil, err
	}
	return tk, nil
}

// SaveTask replaces a task's editable fields, preserving its done state.
func (s *Service) SaveTask(ctx context.Context, tk *task.Task) error {
	if err := s.guard(); err != nil {
		return err
	}
	if code, err := task.ParseCode(tk.Txt); err == nil {
		tk.Txt = code.Compose()
	}
	if existing, err := s.Store.Tasks.Get(tk.ID); err == nil {
		tk.Done = existing.Done
	}
	return s.Store.Tasks.Upsert(tk)
}

// SetDone toggles the pending/classified state.
func (s *Service) SetDone(ctx context.Context, id string, done bool) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.Store.Tasks.Patch(id, map[string]any{"done": done})
}

// SetComments updates the inline-editable comment text.
func (s *Service) SetComments(ctx context.Context, id, comments string) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.Store.Tasks.Patch(id, map[string]any{"comments": comments})
}

// MoveToFolder refiles a task. An empty folder id refiles to the sentinel.
func (s *Service) MoveToFolder(ctx context.Context, id, folderID string) error {
	if err := s.guard(); err != nil {
		return err
	}
	if folderID == "" {
		folderID = task.DefaultFolder
	}
	return s.Store.Tasks.Patch(id, map[string]any{"folder": folderID})
}

// DeleteTask removes a task permanently. Deleting a missing id is a no-op.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.Store.Tasks.Remove(id)
}

// Tasks lists the full current task set.
func (s *Service) Tasks(ctx context.Context) ([]*task.Task, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.Store.Tasks.All(), nil
}

// Folders lists the user-defined folders.
func (s *Service) Folders(ctx context.Context) ([]*folder.Folder, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.Store.Folders.All(), nil
}

// SaveFolder creates or renames a folder. On create the id derives from
// the name; renaming keeps the id stable and changes only the display name.
func (s *Service) SaveFolder(ctx context.Context, id, name string) (*folder.Folder, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if id == "" {
		id = folder.DeriveID(name)
		f := &folder.Folder{ID: id, Name: name}
		if err := s.Store.Folders.Insert(f); err != nil {
			return nil, err
		}
		return f, nil
	}
	f := &folder.Folder{ID: id, Name: name}
	if err := s.Store.Folders.Upsert(f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFolder removes the folder document. Tasks filed under it keep
// their folder id; views tolerate the orphaned reference.
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.Store.Folders.Remove(id)
}

// ViewTasks derives the filtered, ordered view for a selector.
func (s *Service) ViewTasks(ctx context.Context, sel query.Selector, filters query.Filters, search string, fields []query.Field, srt query.Sort) ([]*task.Task, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = query.AllSearchFields
	}
	return query.View(s.Store.Tasks.All(), sel, filters, search, fields, srt), nil
}

// Counts tallies the badge counts for every folder and bucket.
func (s *Service) Counts(ctx context.Context) (query.Tally, error) {
	if err := s.guard(); err != nil {
		return query.Tally{}, err
	}
	return query.Count(s.Store.Tasks.All(), s.Store.Folders.All()), nil
}

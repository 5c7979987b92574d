package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/inbox/pkg/schema"
	"tableflip.dev/inbox/pkg/task"
)

type testConfig struct {
	path      string
	workspace string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) Workspace() string {
	if t.workspace == "" {
		return DefaultWorkspace
	}
	return t.workspace
}

func (t testConfig) SetWorkspace(string) error {
	return nil
}

func validTask(id string) *task.Task {
	tk := task.New("SECMAR", "ELEC", "456/DEF/150223", time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC))
	tk.ID = id
	return tk
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(testConfig{path: t.TempDir()}, "w1")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestInsertRejectsDuplicates(t *testing.T) {
	s := openTestStore(t)
	if err := s.Tasks.Insert(validTask("TASK-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := s.Tasks.Insert(validTask("TASK-1"))
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if dup.ID != "TASK-1" || dup.Collection != "tasks" {
		t.Fatalf("unexpected error detail: %+v", dup)
	}
}

func TestInsertRejectsInvalidDocuments(t *testing.T) {
	s := openTestStore(t)
	bad := validTask("TASK-1")
	bad.Txt = "nope"
	err := s.Tasks.Insert(bad)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPatchMergesAndRevalidates(t *testing.T) {
	s := openTestStore(t)
	if err := s.Tasks.Insert(validTask("TASK-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.Tasks.Patch("TASK-1", map[string]any{"comments": "checked", "done": true}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	got, err := s.Tasks.Get("TASK-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Done || got.Comments != "checked" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.From != "SECMAR" {
		t.Fatalf("untouched field lost: %+v", got)
	}

	// A patch that breaks the schema must not persist.
	if err := s.Tasks.Patch("TASK-1", map[string]any{"from": ""}); err == nil {
		t.Fatal("expected validation error")
	}
	got, _ = s.Tasks.Get("TASK-1")
	if got.From != "SECMAR" {
		t.Fatalf("invalid patch persisted: %+v", got)
	}

	err = s.Tasks.Patch("TASK-404", map[string]any{"done": true})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	s := openTestStore(t)
	if err := s.Tasks.Remove("TASK-404"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if err := s.Tasks.Insert(validTask("TASK-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Tasks.Remove("TASK-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Tasks.Get("TASK-1"); err == nil {
		t.Fatal("expected task gone")
	}
	if err := s.Tasks.Remove("TASK-1"); err != nil {
		t.Fatalf("second remove should be silent, got %v", err)
	}
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	s := openTestStore(t)
	var calls [][]string
	cancel := s.Tasks.Subscribe(func(tasks []*task.Task) {
		ids := make([]string, 0, len(tasks))
		for _, tk := range tasks {
			ids = append(ids, tk.ID)
		}
		calls = append(calls, ids)
	})
	defer cancel()

	if len(calls) != 1 || len(calls[0]) != 0 {
		t.Fatalf("expected immediate empty snapshot, got %v", calls)
	}

	if err := s.Tasks.Insert(validTask("TASK-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// The notification lands before Insert returns.
	if len(calls) != 2 || len(calls[1]) != 1 || calls[1][0] != "TASK-1" {
		t.Fatalf("expected post-insert snapshot, got %v", calls)
	}

	if err := s.Tasks.Remove("TASK-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(calls) != 3 || len(calls[2]) != 0 {
		t.Fatalf("expected post-remove snapshot, got %v", calls)
	}

	cancel()
	if err := s.Tasks.Insert(validTask("TASK-2")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("cancelled subscriber still notified: %v", calls)
	}
}

func TestSubscribePanicIsolation(t *testing.T) {
	s := openTestStore(t)
	second := 0
	cancel1 := s.Tasks.Subscribe(func([]*task.Task) {
		panic("bad subscriber")
	})
	defer cancel1()
	cancel2 := s.Tasks.Subscribe(func([]*task.Task) {
		second++
	})
	defer cancel2()

	if err := s.Tasks.Insert(validTask("TASK-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if second != 2 { // initial snapshot + post-insert
		t.Fatalf("expected second subscriber to survive panic, calls=%d", second)
	}
}

func TestReadMigratesOldDocuments(t *testing.T) {
	base := t.TempDir()
	s, err := Open(testConfig{path: base}, "w1")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	// Hand-write a version-0 document missing the folder field, the shape
	// the earliest deployments produced.
	old := map[string]any{
		"id":      "TASK-OLD",
		"done":    false,
		"from":    "3BN",
		"service": "PROP",
		"txt":     "123/ABC/010123",
		"date":    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
	}
	data, _ := json.Marshal(old)
	path := filepath.Join(base, "w1", "tasks", "TASK-OLD")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("seed old doc: %v", err)
	}

	got, err := s.Tasks.Get("TASK-OLD")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Folder != task.DefaultFolder {
		t.Fatalf("expected folder backfill, got %q", got.Folder)
	}
	if got.Schema != schema.Tasks.Current() {
		t.Fatalf("expected current schema stamp, got %d", got.Schema)
	}

	// The migrated form was written back.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("decode on-disk doc: %v", err)
	}
	if onDisk["folder"] != task.DefaultFolder {
		t.Fatalf("write-back missing, on disk: %v", onDisk)
	}
}

package store

import (
	"context"
	"testing"
	"time"
)

func TestWatchEmitsTaskChanges(t *testing.T) {
	s, err := Open(testConfig{path: t.TempDir()}, "w1")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := s.Tasks.Insert(validTask("TASK-1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventTasksChanged || evt.Type == EventInvalidated {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for task change event")
		}
	}
}

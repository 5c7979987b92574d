package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a storage change notification.
type EventType int

const (
	// EventTasksChanged indicates the tasks collection changed on disk.
	EventTasksChanged EventType = iota

	// EventFoldersChanged indicates the folders collection changed on disk.
	EventFoldersChanged

	// EventInvalidated signals a change that could not be attributed to a
	// single collection; callers should refresh their full view.
	EventInvalidated
)

// Event is emitted by Store.Watch when the workspace directory changes.
type Event struct {
	Type EventType
}

// Watch streams change events for out-of-process writes until ctx is
// cancelled. In-process mutations are already pushed synchronously through
// Collection.Subscribe; Watch exists so a second process editing the same
// workspace is picked up too. Callers should drain the returned channel.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	// The collection buckets may not exist yet on a fresh workspace.
	for _, dir := range []string{s.path, filepath.Join(s.path, "tasks"), filepath.Join(s.path, "folders")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
		}
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next
				// refresh picks up the change anyway and a filesystem storm
				// must not block the watcher goroutine.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a full refresh to keep clients
				// in sync even when the change cannot be classified.
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: s.eventForPath(evt.Name)}, send)
			}
		}
	}()

	return events, nil
}

// eventForPath classifies a filesystem path into a collection event.
func (s *Store) eventForPath(path string) EventType {
	rel, err := filepath.Rel(s.path, path)
	if err != nil || rel == "." {
		return EventInvalidated
	}
	switch strings.Split(rel, string(os.PathSeparator))[0] {
	case "tasks":
		return EventTasksChanged
	case "folders":
		return EventFoldersChanged
	default:
		return EventInvalidated
	}
}

// eventThrottle coalesces rapid change notifications so consumers redraw
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType := range pending {
		send(Event{Type: eventType})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

package store

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Manager hands out the store for the active workspace and caches a
// single handle per name. Switching the active workspace drops the cached
// handle so the next resolution opens the newly selected database.
type Manager struct {
	cfg Config

	mu     sync.Mutex
	active string
	store  *Store
}

// NewManager builds a manager over the given config. A nil config loads
// the default one.
func NewManager(cfg Config) (*Manager, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{cfg: cfg}, nil
}

// Get resolves the workspace store. The name is taken from the explicit
// argument, else the persisted preference, else the default. Handles are
// built fully before they are published.
func (m *Manager) Get(name string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == "" {
		name = m.cfg.Workspace()
	}
	if m.store != nil && m.active == name {
		return m.store, nil
	}
	s, err := Open(m.cfg, name)
	if err != nil {
		return nil, err
	}
	m.store = s
	m.active = name
	return s, nil
}

// SetActive persists the selected workspace and invalidates the cached
// handle.
func (m *Manager) SetActive(name string) error {
	if name == "" {
		return fmt.Errorf("store: workspace name required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.cfg.SetWorkspace(name); err != nil {
		return err
	}
	m.store = nil
	m.active = ""
	return nil
}

// Active is the workspace name the next Get("") resolves to.
func (m *Manager) Active() string {
	return m.cfg.Workspace()
}

// List enumerates the workspace databases previously created under the
// base path. The default name is always included even if it was never
// explicitly created.
func (m *Manager) List() ([]string, error) {
	seen := map[string]bool{DefaultWorkspace: true}
	names := []string{DefaultWorkspace}

	entries, err := os.ReadDir(m.cfg.BasePath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("store: list workspaces: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if !seen[e.Name()] {
			seen[e.Name()] = true
			names = append(names, e.Name())
		}
	}
	if current := m.cfg.Workspace(); !seen[current] {
		names = append(names, current)
	}
	sort.Strings(names)
	return names, nil
}

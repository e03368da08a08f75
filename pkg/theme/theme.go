// Package theme holds the light/dark display preference. It is a thin
// pass-through over a persistence backend.
package theme

import (
	"os"
	"strings"
	"sync"
)

// Preference is the display mode.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// Store persists the preference between runs.
type Store interface {
	Load() (Preference, error)
	Save(Preference) error
}

// Manager keeps the current preference in memory and writes changes through
// to its store.
type Manager struct {
	mu    sync.Mutex
	pref  Preference
	store Store
}

// NewManager loads the saved preference, defaulting to light when nothing is
// stored yet.
func NewManager(store Store) *Manager {
	pref, err := store.Load()
	if err != nil || (pref != Light && pref != Dark) {
		pref = Light
	}
	return &Manager{pref: pref, store: store}
}

// Current returns the active preference.
func (m *Manager) Current() Preference {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pref
}

// Toggle flips the preference and persists it. A failed save keeps the new
// in-memory value; the preference is cosmetic.
func (m *Manager) Toggle() Preference {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pref == Light {
		m.pref = Dark
	} else {
		m.pref = Light
	}
	_ = m.store.Save(m.pref)
	return m.pref
}

// FileStore persists the preference as a single word in a file.
type FileStore struct {
	Path string
}

// Load reads the stored preference.
func (s FileStore) Load() (Preference, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", err
	}
	return Preference(strings.TrimSpace(string(b))), nil
}

// Save writes the preference.
func (s FileStore) Save(p Preference) error {
	return os.WriteFile(s.Path, []byte(p), 0o600)
}

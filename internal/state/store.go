package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clockify-tracker/internal/domain"
)

// Snapshot is the locally tracked timer state shared between invocations.
// It may drift from the server when an entry is stopped on the Clockify
// website; stopping locally resynchronizes it.
type Snapshot struct {
	ActiveEntryID string    `json:"active_entry_id"`
	Description   string    `json:"description,omitempty"`
	ProjectID     string    `json:"project_id,omitempty"`
	ProjectName   string    `json:"project_name,omitempty"`
	ClientName    string    `json:"client_name,omitempty"`
	StartedAt     time.Time `json:"started_at,omitzero"`
	LastSession   *Session  `json:"last_session,omitempty"`
}

// Session summarizes one completed start/stop cycle.
type Session struct {
	Description string    `json:"description,omitempty"`
	ProjectName string    `json:"project_name,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
	DurationSec int64     `json:"duration_sec"`
	Amount      float64   `json:"amount"`
	Rate        float64   `json:"rate"`
	EndedAt     time.Time `json:"ended_at"`
}

// Running reports whether a timer is tracked as active locally.
func (s Snapshot) Running() bool { return s.ActiveEntryID != "" }

// Elapsed returns how long the tracked timer has been running.
func (s Snapshot) Elapsed(now time.Time) time.Duration {
	if !s.Running() || s.StartedAt.IsZero() {
		return 0
	}
	if d := now.Sub(s.StartedAt); d > 0 {
		return d
	}
	return 0
}

const (
	stateFile = "state.json"
	cacheFile = "projects.json"
)

// Store persists the snapshot and project cache as JSON files under a
// single directory. Writes go through a temp file and rename so readers
// never observe a partial file.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir, creating it if needed.
// An empty dir selects ~/.local/share/clockify-tracker.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "clockify-tracker")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads the snapshot. A missing file is an empty (not running) state.
func (s *Store) Load() (Snapshot, error) {
	var snap Snapshot
	if err := s.read(stateFile, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Save writes the snapshot atomically.
func (s *Store) Save(snap Snapshot) error {
	return s.write(stateFile, snap)
}

// Reset clears the tracked timer but keeps the last-session summary.
func (s *Store) Reset() error {
	snap, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(Snapshot{LastSession: snap.LastSession})
}

// LoadCache reads the cached project/client list.
func (s *Store) LoadCache() (domain.ProjectList, error) {
	var list domain.ProjectList
	if err := s.read(cacheFile, &list); err != nil {
		return domain.ProjectList{}, err
	}
	return list, nil
}

// SaveCache replaces the cached project/client list atomically.
func (s *Store) SaveCache(list domain.ProjectList) error {
	return s.write(cacheFile, list)
}

func (s *Store) read(name string, v any) error {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

package state

import (
	"testing"
	"time"

	"clockify-tracker/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Running() {
		t.Fatal("fresh store should not be running")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	started := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	in := Snapshot{
		ActiveEntryID: "entry-1",
		Description:   "Sculpting pass",
		ProjectID:     "p1",
		ProjectName:   "Rig",
		ClientName:    "Studio",
		StartedAt:     started,
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Running() || got.ActiveEntryID != "entry-1" {
		t.Fatalf("got %+v, want running entry-1", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if got.Elapsed(started.Add(90*time.Second)) != 90*time.Second {
		t.Fatalf("Elapsed = %v, want 90s", got.Elapsed(started.Add(90*time.Second)))
	}
}

func TestResetKeepsLastSession(t *testing.T) {
	s := newTestStore(t)
	snap := Snapshot{
		ActiveEntryID: "entry-1",
		LastSession:   &Session{DurationSec: 5400, Amount: 37.5, Rate: 25},
	}
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Running() {
		t.Fatal("reset state should not be running")
	}
	if got.LastSession == nil || got.LastSession.DurationSec != 5400 {
		t.Fatalf("last session lost on reset: %+v", got.LastSession)
	}
}

func TestCacheReplacedWholesale(t *testing.T) {
	s := newTestStore(t)
	first := domain.ProjectList{Projects: []domain.Project{{ID: "p1"}, {ID: "p2"}}}
	if err := s.SaveCache(first); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}
	second := domain.ProjectList{
		Projects: []domain.Project{{ID: "p3"}},
		Clients:  []domain.Client{{ID: "c1", Name: "Studio"}},
	}
	if err := s.SaveCache(second); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}
	got, err := s.LoadCache()
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if len(got.Projects) != 1 || got.Projects[0].ID != "p3" {
		t.Fatalf("cache = %+v, want only p3", got.Projects)
	}
	if len(got.Clients) != 1 {
		t.Fatalf("clients = %+v, want 1", got.Clients)
	}
}

package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"clockify-tracker/internal/domain"
)

type fakeSink struct {
	entries  []domain.TimeEntry
	projects []domain.Project
}

func (f *fakeSink) SyncEntries(ctx context.Context, entries []domain.TimeEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeSink) SyncProjects(ctx context.Context, projects []domain.Project) error {
	f.projects = append(f.projects, projects...)
	return nil
}

func TestSyncRunUpsertsEntriesAndProjects(t *testing.T) {
	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	stop := start.Add(time.Hour)
	api := &fakeAPI{
		entries:  []domain.TimeEntry{{ID: "e1", Start: start, End: &stop, DurationSec: 3600}},
		projects: []domain.Project{{ID: "p1", Name: "Rig"}},
	}
	sink := &fakeSink{}
	uc := &SyncUseCase{
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		API:         api,
		Sink:        sink,
		WorkspaceID: "ws-1",
		UserID:      "user-1",
	}

	if err := uc.Run(context.Background(), start.Add(-time.Hour), stop.Add(time.Hour)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.entries) != 1 || len(sink.projects) != 1 {
		t.Fatalf("sink = %d entries, %d projects", len(sink.entries), len(sink.projects))
	}
}

func TestSyncRunWithoutEntriesStillSyncsProjects(t *testing.T) {
	api := &fakeAPI{projects: []domain.Project{{ID: "p1"}}}
	sink := &fakeSink{}
	uc := &SyncUseCase{
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		API:         api,
		Sink:        sink,
		WorkspaceID: "ws-1",
		UserID:      "user-1",
	}

	if err := uc.Run(context.Background(), time.Now().Add(-time.Hour), time.Now()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.projects) != 1 || len(sink.entries) != 0 {
		t.Fatalf("sink = %d entries, %d projects", len(sink.entries), len(sink.projects))
	}
}

func TestSyncRunRequiresDependencies(t *testing.T) {
	uc := &SyncUseCase{Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	if err := uc.Run(context.Background(), time.Now(), time.Now()); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

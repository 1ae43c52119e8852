package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"clockify-tracker/internal/ports"
)

// SyncUseCase coordinates fetching from Clockify and syncing to a Sink.
type SyncUseCase struct {
	Log         *slog.Logger
	API         ports.ClockifyAPI
	Sink        ports.Sink
	WorkspaceID string
	UserID      string
}

// Run fetches entries in [from, to] plus the project list and upserts both
// into the sink. Each run gets an ID for log correlation.
func (uc *SyncUseCase) Run(ctx context.Context, from, to time.Time) error {
	if uc.API == nil || uc.Sink == nil {
		return errors.New("usecase not initialized: missing dependencies")
	}
	log := uc.Log.With(slog.String("run", uuid.NewString()))
	log.Info("fetching time entries", slog.Time("from", from), slog.Time("to", to))

	entries, err := uc.API.ListTimeEntries(ctx, uc.WorkspaceID, uc.UserID, from, to, "")
	if err != nil {
		return err
	}
	log.Info("fetched time entries", slog.Int("count", len(entries)))

	projects, err := uc.API.ListProjects(ctx, uc.WorkspaceID)
	if err != nil {
		return err
	}

	if err := uc.Sink.SyncProjects(ctx, projects); err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Info("no entries to sync")
		return nil
	}
	if err := uc.Sink.SyncEntries(ctx, entries); err != nil {
		return err
	}
	log.Info("sync completed", slog.Int("count", len(entries)))
	return nil
}

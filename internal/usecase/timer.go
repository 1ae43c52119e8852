package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clockify-tracker/internal/domain"
	"clockify-tracker/internal/ports"
	"clockify-tracker/internal/state"
)

var (
	// ErrTimerRunning is returned by Start when local state already
	// tracks an active entry.
	ErrTimerRunning = errors.New("timer already running, stop it first")
	// ErrStaleState is returned by Stop when the server has no running
	// entry (stopped on the website). Local state is reset before the
	// error is returned.
	ErrStaleState = errors.New("no active entry on the server, local timer reset")
)

// TimerUseCase coordinates start/stop/status against the Clockify API and
// the local state store.
type TimerUseCase struct {
	Log         *slog.Logger
	API         ports.ClockifyAPI
	State       ports.StateStore
	WorkspaceID string
	UserID      string
	Rate        float64
}

// Start begins a new time entry. Fails without contacting the server when
// a timer is already tracked locally.
func (uc *TimerUseCase) Start(ctx context.Context, projectID, description string) (state.Snapshot, error) {
	snap, err := uc.State.Load()
	if err != nil {
		return state.Snapshot{}, err
	}
	if snap.Running() {
		return snap, ErrTimerRunning
	}

	entry, err := uc.API.StartTimeEntry(ctx, uc.WorkspaceID, projectID, description)
	if err != nil {
		return snap, err
	}

	projectName, clientName := uc.resolveNames(entry.ProjectID)
	next := state.Snapshot{
		ActiveEntryID: entry.ID,
		Description:   entry.Description,
		ProjectID:     entry.ProjectID,
		ProjectName:   projectName,
		ClientName:    clientName,
		StartedAt:     entry.Start,
		LastSession:   snap.LastSession,
	}
	if err := uc.State.Save(next); err != nil {
		return snap, fmt.Errorf("save timer state: %w", err)
	}
	uc.Log.Info("timer started",
		slog.String("entry", entry.ID),
		slog.String("project", projectName),
		slog.String("description", entry.Description),
	)
	return next, nil
}

// Stop ends the running entry. When local state is not running this is a
// no-op and the server is never contacted. When the server reports no
// running entry, local state is reset and ErrStaleState returned.
func (uc *TimerUseCase) Stop(ctx context.Context) (*state.Session, error) {
	snap, err := uc.State.Load()
	if err != nil {
		return nil, err
	}
	if !snap.Running() {
		uc.Log.Debug("stop requested with no local timer, nothing to do")
		return nil, nil
	}

	running, err := uc.API.InProgressEntry(ctx, uc.WorkspaceID, uc.UserID)
	if err != nil {
		return nil, err
	}
	if running == nil {
		if err := uc.State.Reset(); err != nil {
			return nil, err
		}
		return nil, ErrStaleState
	}

	end := time.Now().UTC()
	stopped, err := uc.API.StopTimeEntry(ctx, uc.WorkspaceID, *running, end)
	if err != nil {
		return nil, err
	}

	elapsed := stopped.Elapsed(end)
	billing := domain.Bill(elapsed, uc.Rate)
	session := &state.Session{
		Description: stopped.Description,
		ProjectName: snap.ProjectName,
		ClientName:  snap.ClientName,
		DurationSec: int64(elapsed / time.Second),
		Amount:      billing.Amount,
		Rate:        billing.Rate,
		EndedAt:     end,
	}
	if session.ProjectName == "" {
		session.ProjectName, _ = uc.resolveNames(stopped.ProjectID)
	}
	if err := uc.State.Save(state.Snapshot{LastSession: session}); err != nil {
		return nil, fmt.Errorf("save timer state: %w", err)
	}
	uc.Log.Info("timer stopped",
		slog.String("entry", stopped.ID),
		slog.Duration("elapsed", elapsed),
		slog.Float64("amount", billing.Amount),
	)
	return session, nil
}

// Status returns the local snapshot. With remote set it reconciles against
// the server first: a running server entry is adopted into local state, an
// absent one clears it.
func (uc *TimerUseCase) Status(ctx context.Context, remote bool) (state.Snapshot, error) {
	snap, err := uc.State.Load()
	if err != nil {
		return state.Snapshot{}, err
	}
	if !remote {
		return snap, nil
	}

	running, err := uc.API.InProgressEntry(ctx, uc.WorkspaceID, uc.UserID)
	if err != nil {
		return snap, err
	}
	if running == nil {
		if snap.Running() {
			uc.Log.Info("server has no running entry, clearing local timer")
			if err := uc.State.Reset(); err != nil {
				return snap, err
			}
		}
		return uc.State.Load()
	}

	projectName, clientName := uc.resolveNames(running.ProjectID)
	next := state.Snapshot{
		ActiveEntryID: running.ID,
		Description:   running.Description,
		ProjectID:     running.ProjectID,
		ProjectName:   projectName,
		ClientName:    clientName,
		StartedAt:     running.Start,
		LastSession:   snap.LastSession,
	}
	if err := uc.State.Save(next); err != nil {
		return snap, err
	}
	return next, nil
}

// RefreshCache fetches projects and clients and replaces the local cache
// in one write.
func (uc *TimerUseCase) RefreshCache(ctx context.Context) (domain.ProjectList, error) {
	projects, err := uc.API.ListProjects(ctx, uc.WorkspaceID)
	if err != nil {
		return domain.ProjectList{}, err
	}
	clients, err := uc.API.ListClients(ctx, uc.WorkspaceID)
	if err != nil {
		return domain.ProjectList{}, err
	}

	list := domain.ProjectList{Projects: projects, Clients: clients}
	for i := range list.Projects {
		if list.Projects[i].ClientName == "" && list.Projects[i].ClientID != "" {
			list.Projects[i].ClientName = list.ClientName(list.Projects[i].ClientID)
		}
	}
	if err := uc.State.SaveCache(list); err != nil {
		return domain.ProjectList{}, fmt.Errorf("save project cache: %w", err)
	}
	uc.Log.Info("project cache refreshed",
		slog.Int("projects", len(projects)),
		slog.Int("clients", len(clients)),
	)
	return list, nil
}

// CreateProject creates a project and refreshes the cache so the new
// project is immediately selectable.
func (uc *TimerUseCase) CreateProject(ctx context.Context, name, clientID string) (domain.Project, error) {
	project, err := uc.API.CreateProject(ctx, uc.WorkspaceID, name, clientID)
	if err != nil {
		return domain.Project{}, err
	}
	if _, err := uc.RefreshCache(ctx); err != nil {
		return project, err
	}
	return project, nil
}

// CreateClient creates a client and refreshes the cache.
func (uc *TimerUseCase) CreateClient(ctx context.Context, name string) (domain.Client, error) {
	client, err := uc.API.CreateClient(ctx, uc.WorkspaceID, name)
	if err != nil {
		return domain.Client{}, err
	}
	if _, err := uc.RefreshCache(ctx); err != nil {
		return client, err
	}
	return client, nil
}

func (uc *TimerUseCase) resolveNames(projectID string) (projectName, clientName string) {
	if projectID == "" {
		return "", ""
	}
	cache, err := uc.State.LoadCache()
	if err != nil {
		return "", ""
	}
	if p, ok := cache.ByID(projectID); ok {
		return p.Name, p.ClientName
	}
	return "", ""
}

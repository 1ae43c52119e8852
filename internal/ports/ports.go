package ports

import (
	"context"
	"time"

	"clockify-tracker/internal/domain"
	"clockify-tracker/internal/state"
)

// ClockifyAPI defines the Clockify REST operations the use cases need.
type ClockifyAPI interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error)
	ListClients(ctx context.Context, workspaceID string) ([]domain.Client, error)
	CreateProject(ctx context.Context, workspaceID, name, clientID string) (domain.Project, error)
	CreateClient(ctx context.Context, workspaceID, name string) (domain.Client, error)
	StartTimeEntry(ctx context.Context, workspaceID, projectID, description string) (domain.TimeEntry, error)
	StopTimeEntry(ctx context.Context, workspaceID string, entry domain.TimeEntry, end time.Time) (domain.TimeEntry, error)
	InProgressEntry(ctx context.Context, workspaceID, userID string) (*domain.TimeEntry, error)
	ListTimeEntries(ctx context.Context, workspaceID, userID string, from, to time.Time, projectID string) ([]domain.TimeEntry, error)
}

// Sink receives entries and persists them to a target system. The primary
// target is MySQL reporting storage, but the interface stays generic.
type Sink interface {
	SyncEntries(ctx context.Context, entries []domain.TimeEntry) error
	SyncProjects(ctx context.Context, projects []domain.Project) error
}

// StateStore persists the local timer snapshot and the project cache
// between CLI invocations.
type StateStore interface {
	Load() (state.Snapshot, error)
	Save(state.Snapshot) error
	Reset() error
	LoadCache() (domain.ProjectList, error)
	SaveCache(domain.ProjectList) error
}

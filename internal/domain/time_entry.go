package domain

import "time"

// TimeEntry represents a Clockify time entry in the domain.
// A nil End means the entry is still running.
type TimeEntry struct {
	ID          string
	Description string
	ProjectID   string
	TaskID      string
	WorkspaceID string
	UserID      string
	TagIDs      []string
	Billable    bool
	Start       time.Time
	End         *time.Time
	DurationSec int64 // zero while running
}

// Running reports whether the entry has no recorded end.
func (e TimeEntry) Running() bool { return e.End == nil }

// Elapsed returns the entry's duration, using now for running entries.
func (e TimeEntry) Elapsed(now time.Time) time.Duration {
	if e.End != nil {
		return e.End.Sub(e.Start)
	}
	if d := now.Sub(e.Start); d > 0 {
		return d
	}
	return 0
}

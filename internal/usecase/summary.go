package usecase

import (
	"context"
	"log/slog"
	"time"

	"clockify-tracker/internal/domain"
	"clockify-tracker/internal/ports"
)

// Summary is the monthly rollup for a single project.
type Summary struct {
	ProjectID string
	Total     time.Duration
	Entries   int
	From      time.Time
	To        time.Time
	Billing   domain.Billing
}

// SummaryUseCase computes per-project monthly totals with billing.
type SummaryUseCase struct {
	Log         *slog.Logger
	API         ports.ClockifyAPI
	WorkspaceID string
	UserID      string
	Rate        float64
}

// MonthOf returns the [start, end) window of the month containing t, in UTC.
func MonthOf(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Month sums the project's completed entries for the month containing now.
// Running entries are excluded; their duration is not final yet.
func (uc *SummaryUseCase) Month(ctx context.Context, projectID string, now time.Time) (Summary, error) {
	from, to := MonthOf(now)
	entries, err := uc.API.ListTimeEntries(ctx, uc.WorkspaceID, uc.UserID, from, to, projectID)
	if err != nil {
		return Summary{}, err
	}

	var total time.Duration
	count := 0
	for _, e := range entries {
		if e.Running() {
			continue
		}
		total += time.Duration(e.DurationSec) * time.Second
		count++
	}

	uc.Log.Info("project summary computed",
		slog.String("project", projectID),
		slog.Int("entries", count),
		slog.Duration("total", total),
	)
	return Summary{
		ProjectID: projectID,
		Total:     total,
		Entries:   count,
		From:      from,
		To:        to,
		Billing:   domain.Bill(total, uc.Rate),
	}, nil
}

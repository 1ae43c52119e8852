package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"clockify-tracker/internal/domain"
)

func TestMonthOf(t *testing.T) {
	now := time.Date(2025, 8, 15, 13, 45, 0, 0, time.UTC)
	from, to := MonthOf(now)
	if !from.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from = %v", from)
	}
	if !to.Equal(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to = %v", to)
	}

	// December rolls into the next year.
	from, to = MonthOf(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	if to.Year() != 2026 || to.Month() != time.January {
		t.Fatalf("december window = %v..%v", from, to)
	}
}

func TestMonthSummarySkipsRunningEntries(t *testing.T) {
	start := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	stop := start.Add(time.Hour)
	api := &fakeAPI{entries: []domain.TimeEntry{
		{ID: "e1", Start: start, End: &stop, DurationSec: 3600},
		{ID: "e2", Start: start.Add(2 * time.Hour), End: &stop, DurationSec: 1800},
		{ID: "e3", Start: start.Add(4 * time.Hour)}, // still running
	}}
	uc := &SummaryUseCase{
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		API:         api,
		WorkspaceID: "ws-1",
		UserID:      "user-1",
		Rate:        40.0,
	}

	sum, err := uc.Month(context.Background(), "p1", start.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if sum.Entries != 2 {
		t.Fatalf("Entries = %d, want 2", sum.Entries)
	}
	if sum.Total != 90*time.Minute {
		t.Fatalf("Total = %v, want 1h30m", sum.Total)
	}
	if sum.Billing.Amount != 60.0 {
		t.Fatalf("Amount = %v, want 60", sum.Billing.Amount)
	}
}

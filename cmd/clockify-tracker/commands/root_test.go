package commands

import (
	"testing"
	"time"

	"clockify-tracker/internal/domain"
)

func TestParseStart(t *testing.T) {
	def := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := parseStart("", def)
	if err != nil || !got.Equal(def) {
		t.Fatalf("empty: got %v, %v", got, err)
	}

	got, err = parseStart("2024-05-10", def)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("date-only: got %v, want %v", got, want)
	}

	got, err = parseStart("2024-05-10T08:30:00Z", def)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 8 || got.Minute() != 30 {
		t.Fatalf("rfc3339: got %v", got)
	}

	if _, err := parseStart("yesterday", def); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestParseEndDateOnlyIsInclusive(t *testing.T) {
	def := time.Now()
	got, err := parseEnd("2024-05-10", def)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want next-day midnight %v", got, want)
	}
}

func TestResolveProject(t *testing.T) {
	list := domain.ProjectList{Projects: []domain.Project{
		{ID: "p1", Name: "Website"},
		{ID: "p2", Name: "Mobile App"},
	}}

	if p, ok := resolveProject(list, "p2"); !ok || p.Name != "Mobile App" {
		t.Fatalf("by ID: got %+v, %v", p, ok)
	}
	if p, ok := resolveProject(list, "website"); !ok || p.ID != "p1" {
		t.Fatalf("by name case-insensitive: got %+v, %v", p, ok)
	}
	if _, ok := resolveProject(list, "nope"); ok {
		t.Fatal("unknown project resolved")
	}
}

func TestCheckLoopWindow(t *testing.T) {
	cases := []struct {
		name     string
		daily    bool
		interval time.Duration
		from, to string
		wantErr  bool
	}{
		{name: "one-shot with window", from: "2024-05-01", to: "2024-05-02"},
		{name: "daily without window", daily: true},
		{name: "interval without window", interval: 15 * time.Minute},
		{name: "daily with from", daily: true, from: "2024-05-01", wantErr: true},
		{name: "interval with to", interval: time.Hour, to: "2024-05-02", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkLoopWindow(tc.daily, tc.interval, tc.from, tc.to)
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNextMidnight(t *testing.T) {
	loc := time.UTC
	afternoon := time.Date(2024, 5, 10, 15, 0, 0, 0, loc)
	if got := nextMidnight(afternoon); !got.Equal(time.Date(2024, 5, 11, 0, 0, 0, 0, loc)) {
		t.Fatalf("afternoon: got %v", got)
	}
	midnight := time.Date(2024, 5, 10, 0, 0, 0, 0, loc)
	if got := nextMidnight(midnight); !got.Equal(time.Date(2024, 5, 11, 0, 0, 0, 0, loc)) {
		t.Fatalf("exact midnight: got %v", got)
	}
}

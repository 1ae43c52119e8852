package clockify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clockify-tracker/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/user" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "key123" {
			t.Errorf("X-Api-Key = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id": "user-1", "name": "Kyo", "email": "kyo@example.com", "defaultWorkspace": "ws-1",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key123", testLogger())
	user, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if user.ID != "user-1" || user.DefaultWorkspace != "ws-1" {
		t.Fatalf("user = %+v", user)
	}
}

func TestAuthErrorOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Api key does not exist", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", testLogger())
	if _, err := c.CurrentUser(context.Background()); !errors.Is(err, ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
	if _, err := c.ListProjects(context.Background(), "ws-1"); !errors.Is(err, ErrAuth) {
		t.Fatalf("ListProjects err = %v, want ErrAuth", err)
	}
}

func TestMissingAPIKeyIsAuthError(t *testing.T) {
	c := NewClient("https://api.clockify.me", "", testLogger())
	if _, err := c.CurrentUser(context.Background()); !errors.Is(err, ErrAuth) {
		t.Fatalf("err = %v, want ErrAuth", err)
	}
}

func TestStartTimeEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/workspaces/ws-1/time-entries" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["description"] != "Sculpting" || body["projectId"] != "p1" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "entry-1", "description": "Sculpting", "projectId": "p1",
			"timeInterval": map[string]any{"start": "2025-08-01T09:00:00Z", "duration": nil},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", testLogger())
	entry, err := c.StartTimeEntry(context.Background(), "ws-1", "p1", "Sculpting")
	if err != nil {
		t.Fatalf("StartTimeEntry: %v", err)
	}
	if entry.ID != "entry-1" || !entry.Running() {
		t.Fatalf("entry = %+v, want running entry-1", entry)
	}
}

func TestStartTimeEntryRequiresWorkspace(t *testing.T) {
	c := NewClient("https://api.clockify.me", "k", testLogger())
	if _, err := c.StartTimeEntry(context.Background(), "", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestStopTimeEntryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "time entry not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", testLogger())
	entry := domain.TimeEntry{ID: "gone", Start: time.Now()}
	_, err := c.StopTimeEntry(context.Background(), "ws-1", entry, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStopTimeEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/workspaces/ws-1/time-entries/entry-1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["end"] == nil || body["start"] == nil {
			t.Errorf("body missing interval: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": "entry-1",
			"timeInterval": map[string]any{
				"start": "2025-08-01T09:00:00Z", "end": "2025-08-01T10:30:00Z", "duration": "PT1H30M",
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", testLogger())
	running := domain.TimeEntry{ID: "entry-1", Start: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)}
	stopped, err := c.StopTimeEntry(context.Background(), "ws-1", running, time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("StopTimeEntry: %v", err)
	}
	if stopped.Running() {
		t.Fatal("entry should be stopped")
	}
	if stopped.DurationSec != 5400 {
		t.Fatalf("DurationSec = %d, want 5400", stopped.DurationSec)
	}
}

func TestInProgressEntryEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("in-progress"); got != "true" {
			t.Errorf("in-progress = %q", got)
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", testLogger())
	entry, err := c.InProgressEntry(context.Background(), "ws-1", "user-1")
	if err != nil {
		t.Fatalf("InProgressEntry: %v", err)
	}
	if entry != nil {
		t.Fatalf("entry = %+v, want nil", entry)
	}
}

func TestListTimeEntriesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("project") != "p1" || q.Get("start") == "" || q.Get("end") == "" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id": "e1", "description": "Dev",
				"timeInterval": map[string]any{
					"start": "2025-08-01T09:00:00Z", "end": "2025-08-01T10:00:00Z", "duration": "PT1H",
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", testLogger())
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	entries, err := c.ListTimeEntries(context.Background(), "ws-1", "user-1", from, from.AddDate(0, 1, 0), "p1")
	if err != nil {
		t.Fatalf("ListTimeEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].DurationSec != 3600 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestNetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "k", testLogger())
	if _, err := c.CurrentUser(context.Background()); !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

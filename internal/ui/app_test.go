package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"clockify-tracker/internal/domain"
	"clockify-tracker/internal/state"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testModel() Model {
	m := New(Options{})
	m.ready = true
	m.list = domain.ProjectList{Projects: []domain.Project{
		{ID: "p1", Name: "alpha"},
		{ID: "p2", Name: "beta"},
		{ID: "p3", Name: "gamma"},
	}}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func TestCursorMovesWithinBounds(t *testing.T) {
	m := testModel()

	m = update(t, m, keyRune('k'))
	if m.cursor != 0 {
		t.Fatalf("cursor moved above first row: %d", m.cursor)
	}

	m = update(t, m, keyRune('j'))
	m = update(t, m, keyRune('j'))
	m = update(t, m, keyRune('j'))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want clamped to 2", m.cursor)
	}
}

func TestCacheMsgClampsCursor(t *testing.T) {
	m := testModel()
	m.cursor = 2

	m = update(t, m, cacheMsg(domain.ProjectList{Projects: []domain.Project{
		{ID: "p1", Name: "alpha"},
	}}))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d after shrinking cache, want 0", m.cursor)
	}
	if len(m.list.Projects) != 1 {
		t.Fatalf("list not replaced, %d projects", len(m.list.Projects))
	}
}

func TestSnapshotMsgUpdatesStatus(t *testing.T) {
	m := testModel()

	m = update(t, m, snapshotMsg(state.Snapshot{ActiveEntryID: "e1"}))
	if !m.snap.Running() {
		t.Fatal("snapshot not adopted")
	}
	if m.status != "timer running" {
		t.Fatalf("status = %q", m.status)
	}

	m = update(t, m, snapshotMsg(state.Snapshot{}))
	if m.snap.Running() {
		t.Fatal("snapshot not cleared")
	}
	if m.status != "no timer running" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestDescribeModeCapturesKeys(t *testing.T) {
	m := testModel()

	m = update(t, m, keyRune('d'))
	if !m.editing {
		t.Fatal("describe key did not enter editing mode")
	}

	m = update(t, m, keyRune('j'))
	if m.cursor != 0 {
		t.Fatalf("cursor moved while editing: %d", m.cursor)
	}
	if got := m.descInput.Value(); got != "j" {
		t.Fatalf("input value = %q, want %q", got, "j")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.editing {
		t.Fatal("escape did not leave editing mode")
	}
}

func TestSelectedProjectID(t *testing.T) {
	m := testModel()
	if got := m.selectedProjectID(); got != "p1" {
		t.Fatalf("selectedProjectID() = %q, want %q", got, "p1")
	}

	m.list = domain.ProjectList{}
	if got := m.selectedProjectID(); got != "" {
		t.Fatalf("selectedProjectID() = %q for empty list, want empty", got)
	}
}

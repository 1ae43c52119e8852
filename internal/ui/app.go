// Package ui provides the interactive Bubble Tea tracker panel.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clockify-tracker/internal/config"
	"clockify-tracker/internal/domain"
	"clockify-tracker/internal/state"
	"clockify-tracker/internal/usecase"
)

// Options configure the panel.
type Options struct {
	Context context.Context
	Timer   *usecase.TimerUseCase
	Summary *usecase.SummaryUseCase
	Display config.Display
	Rate    float64
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx     context.Context
	timer   *usecase.TimerUseCase
	summary *usecase.SummaryUseCase
	display config.Display
	rate    float64

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	list    domain.ProjectList
	cursor  int
	snap    state.Snapshot
	sum     *usecase.Summary
	status  string
	lastErr string
	busy    bool

	descInput textinput.Model
	editing   bool
}

// New creates the panel model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	input := textinput.New()
	input.Placeholder = "task description"
	input.CharLimit = 200
	return Model{
		ctx:       ctx,
		timer:     opts.Timer,
		summary:   opts.Summary,
		display:   opts.Display,
		rate:      opts.Rate,
		keys:      defaultKeyMap(),
		theme:     defaultTheme(),
		descInput: input,
		status:    "loading…",
	}
}

// Run blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

type (
	tickMsg     time.Time
	cacheMsg    domain.ProjectList
	snapshotMsg state.Snapshot
	sessionMsg  *state.Session
	summaryMsg  usecase.Summary
	errMsg      struct{ err error }
)

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadCacheCmd() tea.Cmd {
	return func() tea.Msg {
		list, err := m.timer.State.LoadCache()
		if err != nil {
			return errMsg{err}
		}
		return cacheMsg(list)
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		list, err := m.timer.RefreshCache(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return cacheMsg(list)
	}
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.timer.Status(m.ctx, false)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg(snap)
	}
}

func (m Model) startCmd(projectID, description string) tea.Cmd {
	return func() tea.Msg {
		snap, err := m.timer.Start(m.ctx, projectID, description)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg(snap)
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.timer.Stop(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg(session)
	}
}

func (m Model) summaryCmd(projectID string) tea.Cmd {
	return func() tea.Msg {
		sum, err := m.summary.Month(m.ctx, projectID, time.Now())
		if err != nil {
			return errMsg{err}
		}
		return summaryMsg(sum)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.loadCacheCmd(), m.statusCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case cacheMsg:
		m.list = domain.ProjectList(msg)
		if m.cursor >= len(m.list.Projects) {
			m.cursor = 0
		}
		m.busy = false
		m.status = "projects refreshed"
		return m, nil

	case snapshotMsg:
		m.snap = state.Snapshot(msg)
		m.busy = false
		if m.snap.Running() {
			m.status = "timer running"
		} else {
			m.status = "no timer running"
		}
		return m, nil

	case sessionMsg:
		m.busy = false
		if msg == nil {
			m.status = "no timer to stop"
			return m, m.statusCmd()
		}
		m.snap = state.Snapshot{LastSession: msg}
		m.status = "session complete"
		return m, nil

	case summaryMsg:
		m.busy = false
		sum := usecase.Summary(msg)
		m.sum = &sum
		m.status = "summary updated"
		return m, nil

	case errMsg:
		m.busy = false
		m.lastErr = msg.err.Error()
		if errors.Is(msg.err, usecase.ErrStaleState) {
			// Local state was already reset; reflect that.
			return m, m.statusCmd()
		}
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.descInput, cmd = m.descInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.editing = false
			m.descInput.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Escape):
			m.editing = false
			m.descInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.descInput, cmd = m.descInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list.Projects)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Describe):
		m.editing = true
		m.descInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		m.lastErr = ""
		m.status = "refreshing projects…"
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Start):
		if m.busy || m.snap.Running() {
			return m, nil
		}
		m.busy = true
		m.lastErr = ""
		m.status = "starting timer…"
		return m, m.startCmd(m.selectedProjectID(), m.descInput.Value())

	case key.Matches(msg, m.keys.Stop):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.lastErr = ""
		m.status = "stopping timer…"
		return m, m.stopCmd()

	case key.Matches(msg, m.keys.Summary):
		if id := m.selectedProjectID(); id != "" {
			m.busy = true
			m.lastErr = ""
			m.status = "computing summary…"
			return m, m.summaryCmd(id)
		}
		m.status = "select a project first"
		return m, nil
	}
	return m, nil
}

func (m Model) selectedProjectID() string {
	if m.cursor < 0 || m.cursor >= len(m.list.Projects) {
		return ""
	}
	return m.list.Projects[m.cursor].ID
}

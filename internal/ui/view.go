package ui

import (
	"fmt"
	"strings"
	"time"

	"clockify-tracker/internal/domain"
)

const maxListRows = 12

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting…"
	}

	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Clockify Tracker"))
	b.WriteString("\n\n")

	b.WriteString(styles.Box.Render(m.timerView(styles)))
	b.WriteString("\n\n")

	b.WriteString(m.projectListView(styles))
	b.WriteString("\n")

	if m.editing {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("description: "))
		b.WriteString(m.descInput.View())
		b.WriteString("\n")
	}

	if m.sum != nil {
		b.WriteString("\n")
		b.WriteString(m.summaryView(styles))
		b.WriteString("\n")
	}

	if m.display.ShowLastSession && m.snap.LastSession != nil {
		b.WriteString("\n")
		b.WriteString(m.lastSessionView(styles))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.lastErr != "" {
		b.WriteString(styles.Error.Render("error: " + m.lastErr))
	} else {
		b.WriteString(styles.Muted.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("s start · x stop · d describe · r refresh · t summary · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) timerView(styles Styles) string {
	if !m.snap.Running() {
		return styles.Idle.Render("● no timer running")
	}

	var lines []string
	lines = append(lines, styles.Running.Render("● tracking"))
	if m.snap.Description != "" {
		lines = append(lines, truncate(m.snap.Description, m.contentWidth()))
	}
	if m.display.ShowProjectName && m.snap.ProjectName != "" {
		project := m.snap.ProjectName
		if m.display.ShowClientName && m.snap.ClientName != "" {
			project += " / " + m.snap.ClientName
		}
		lines = append(lines, styles.Muted.Render(project))
	}
	elapsed := m.snap.Elapsed(time.Now())
	if m.display.ShowElapsed {
		lines = append(lines, domain.FormatClock(elapsed))
	}
	if m.display.ShowBillable {
		billing := domain.Bill(elapsed, m.rate)
		lines = append(lines, styles.Muted.Render(money(billing.Amount)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) projectListView(styles Styles) string {
	if len(m.list.Projects) == 0 {
		return styles.Muted.Render("no projects cached, press r to refresh")
	}

	start, end := listWindow(m.cursor, len(m.list.Projects), maxListRows)
	var b strings.Builder
	for i := start; i < end; i++ {
		p := m.list.Projects[i]
		label := p.Name
		if m.display.ShowClientName && p.ClientName != "" {
			label += " (" + p.ClientName + ")"
		}
		label = truncate(label, m.contentWidth())
		if i == m.cursor {
			b.WriteString(styles.Selected.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) summaryView(styles Styles) string {
	name := m.sum.ProjectID
	if p, ok := m.list.ByID(m.sum.ProjectID); ok {
		name = p.Name
	}
	return fmt.Sprintf("%s %s: %s over %d entries, %s",
		styles.Muted.Render(m.sum.From.Format("January 2006")),
		name,
		domain.FormatDetailed(m.sum.Total),
		m.sum.Entries,
		money(m.sum.Billing.Amount),
	)
}

func (m Model) lastSessionView(styles Styles) string {
	s := m.snap.LastSession
	line := "last: " + domain.FormatDetailed(time.Duration(s.DurationSec)*time.Second)
	if s.ProjectName != "" {
		line += " on " + s.ProjectName
	}
	line += ", " + money(s.Amount)
	return styles.Muted.Render(truncate(line, m.contentWidth()))
}

func (m Model) contentWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 4
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkarlsen/tally/internal/dateutil"
	"github.com/mkarlsen/tally/internal/stats"
	"github.com/mkarlsen/tally/internal/tui/components/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHabits:
		content = m.viewHabits()
	case StateCalendar:
		content = m.viewCalendar()
	case StateStats:
		content = m.viewStats()
	case StateJournal:
		content = m.viewJournal()
	case StateAddHabit:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Calendar", "Stats", "Journal"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewHabits() string {
	return docStyle.Render(m.habitList.View())
}

func (m Model) viewCalendar() string {
	habit, ok := m.habitList.Selected()
	if !ok {
		return docStyle.Render(mutedStyle.Render("No habits yet. Press 'a' on the Habits tab to add one."))
	}

	series := stats.MonthlySeries(habit, m.month, m.year)
	grid := calendar.Render(series, m.month, m.year, dateutil.Key(time.Now()))

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(habit.Name),
		"",
		grid,
		mutedStyle.Render("←/→ to change month"),
	))
}

func (m Model) viewStats() string {
	habit, ok := m.habitList.Selected()
	if !ok {
		return docStyle.Render(mutedStyle.Render("No habits yet. Press 'a' on the Habits tab to add one."))
	}

	now := time.Now()
	summary := stats.Summarize(habit, now)

	var b strings.Builder
	b.WriteString(titleStyle.Render(habit.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total completions: %d\n", summary.TotalCompletions)
	fmt.Fprintf(&b, "Completion rate:   %.1f%%\n", summary.CompletionRate)
	fmt.Fprintf(&b, "Current streak:    %d\n", summary.CurrentStreak)
	fmt.Fprintf(&b, "Longest streak:    %d\n\n", summary.LongestStreak)

	b.WriteString(titleStyle.Render(fmt.Sprintf("%d by month", now.Year())))
	b.WriteString("\n")
	for _, p := range stats.YearlySeries(habit, now.Year()) {
		bar := strings.Repeat("█", int(p.CompletionRate/5))
		fmt.Fprintf(&b, "%s %5.1f%% %s\n", p.Label, p.CompletionRate, statusStyle.Render(bar))
	}

	return docStyle.Render(b.String())
}

func (m Model) viewJournal() string {
	now := time.Now()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Journal — " + dateutil.Key(now)))
	b.WriteString("\n\n")

	mood, ok, err := m.session.Mood(now)
	switch {
	case err != nil:
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
	case ok:
		fmt.Fprintf(&b, "Mood: %d/5  %s\n", mood, statusStyle.Render(strings.Repeat("●", mood)))
	default:
		b.WriteString(mutedStyle.Render("Mood: not set (press 1-5)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	reflection, ok, err := m.session.Reflection(now)
	switch {
	case err != nil:
		b.WriteString(errorStyle.Render(err.Error()))
	case ok:
		b.WriteString("Reflection:\n")
		b.WriteString(reflection)
	default:
		b.WriteString(mutedStyle.Render("No reflection yet. Use 'tally reflect' to write one."))
	}
	b.WriteString("\n")

	return docStyle.Render(b.String())
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render("Delete this habit and all of its history?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

// Package calendar renders a month grid of a habit's completions.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkarlsen/tally/internal/stats"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	todayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dayStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// Render draws one month of the series as a weekday-aligned grid. The today
// key, when present in the month, is highlighted.
func Render(series []stats.DayPoint, month time.Month, year int, todayKey string) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	var cells []string
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, "  ")
	}

	for _, p := range series {
		cell := fmt.Sprintf("%2d", p.Day)
		switch {
		case p.Completed == 1:
			cell = completedStyle.Render(" ●")
		case p.DateKey == todayKey:
			cell = todayStyle.Render(cell)
		default:
			cell = dayStyle.Render(cell)
		}
		cells = append(cells, cell)

		if len(cells) == 7 {
			b.WriteString(strings.Join(cells, " "))
			b.WriteString("\n")
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	return b.String()
}

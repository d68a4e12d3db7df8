// Package habitlist wraps a bubbles list of the user's habits with today's
// completion state baked into each item.
package habitlist

import (
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarlsen/tally/internal/models"
)

type Item struct {
	Habit    models.Habit
	IsMarked bool
	DueToday bool
	Schedule string
}

func (i Item) Title() string {
	title := i.Habit.Name
	if i.IsMarked {
		title = "✓ " + title
	} else {
		title = "○ " + title
	}
	return title
}

func (i Item) Description() string {
	state := "not completed today"
	if i.IsMarked {
		state = "completed today"
	} else if !i.DueToday {
		state = "not due today"
	}
	return i.Schedule + " · streak " + strconv.Itoa(i.Habit.CurrentStreak) + " · " + state
}

func (i Item) FilterValue() string { return i.Habit.Name }

type Model struct {
	List list.Model
}

func New(items []Item, width, height int) Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return Model{List: l}
}

// SetItems replaces the list contents, keeping the cursor in range.
func (m *Model) SetItems(items []Item) {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	m.List.SetItems(listItems)
	if m.List.Index() >= len(listItems) && len(listItems) > 0 {
		m.List.Select(len(listItems) - 1)
	}
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (models.Habit, bool) {
	item, ok := m.List.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return item.Habit, true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.List.View()
}

func (m *Model) SetSize(width, height int) {
	m.List.SetSize(width, height)
}

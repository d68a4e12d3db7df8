package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mkarlsen/tally/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.state == StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = m.previousState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			schedule := models.Schedule{Frequency: m.habitForm.Frequency}
			if m.habitForm.Frequency == models.FrequencyWeekly {
				schedule.Weekdays = m.habitForm.Weekdays
			}
			habit, err := m.session.AddHabit(m.habitForm.Name, m.habitForm.Description, schedule, m.habitForm.Difficulty)
			if err != nil {
				m.errMsg = err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.status = fmt.Sprintf("Added habit %q", habit.Name)
			m.errMsg = ""
			m.refreshHabits()
			m.state = m.previousState
		case huh.StateAborted:
			m.state = m.previousState
		}
		return m, tea.Batch(cmds...)
	}

	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.session.DeleteHabit(m.habitToDeleteID); err != nil {
					m.errMsg = err.Error()
				} else {
					m.status = "Habit deleted"
					m.errMsg = ""
				}
				m.refreshHabits()
				m.state = m.previousState
			case "n", "N", "esc", "q":
				m.state = m.previousState
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitList.SetSize(msg.Width-h, msg.Height-v-4)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.status = ""
			m.errMsg = ""

		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.status = ""
			m.errMsg = ""

		case key.Matches(msg, m.keys.Toggle) && m.state == StateHabits:
			habit, ok := m.habitList.Selected()
			if !ok {
				return m, nil
			}
			updated, err := m.session.Toggle(habit.ID, time.Now())
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.status = fmt.Sprintf("%s: streak %d (best %d)", updated.Name, updated.CurrentStreak, updated.LongestStreak)
			m.refreshHabits()

		case key.Matches(msg, m.keys.Add) && m.state == StateHabits:
			m.previousState = m.state
			m.habitForm = &HabitFormModel{
				Frequency:  models.FrequencyDaily,
				Difficulty: models.DifficultyMedium,
			}
			m.form = newHabitForm(m.habitForm)
			m.state = StateAddHabit
			return m, m.form.Init()

		case key.Matches(msg, m.keys.Delete) && m.state == StateHabits:
			habit, ok := m.habitList.Selected()
			if !ok {
				return m, nil
			}
			m.previousState = m.state
			m.habitToDeleteID = habit.ID
			m.state = StateConfirmDelete

		case key.Matches(msg, m.keys.Mood) && m.state == StateJournal:
			score, err := strconv.Atoi(msg.String())
			if err != nil {
				return m, nil
			}
			if err := m.session.SetMood(time.Now(), score); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.status = fmt.Sprintf("Mood set to %d", score)

		case key.Matches(msg, m.keys.Left) && m.state == StateCalendar:
			m.month--
			if m.month < time.January {
				m.month = time.December
				m.year--
			}

		case key.Matches(msg, m.keys.Right) && m.state == StateCalendar:
			m.month++
			if m.month > time.December {
				m.month = time.January
				m.year++
			}

		default:
			if m.state == StateHabits || m.state == StateCalendar || m.state == StateStats {
				var cmd tea.Cmd
				m.habitList, cmd = m.habitList.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

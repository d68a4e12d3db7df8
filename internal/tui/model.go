package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarlsen/tally/internal/dateutil"
	"github.com/mkarlsen/tally/internal/models"
	"github.com/mkarlsen/tally/internal/session"
	"github.com/mkarlsen/tally/internal/stats"
	"github.com/mkarlsen/tally/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateCalendar
	StateStats
	StateJournal
	StateAddHabit
	StateConfirmDelete
)

// tabCount is the number of cycleable tabs; the modal states come after it.
const tabCount = 4

type HabitFormModel struct {
	Name        string
	Description string
	Frequency   models.FrequencyType
	Weekdays    []time.Weekday
	Difficulty  models.Difficulty
}

type Model struct {
	session       *session.Manager
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habitList     habitlist.Model
	form          *huh.Form
	habitForm     *HabitFormModel

	// Calendar tab cursor.
	month time.Month
	year  int

	habitToDeleteID string
	status          string
	errMsg          string
	quitting        bool
	width           int
	height          int
}

func NewModel(sess *session.Manager) Model {
	now := time.Now()
	m := Model{
		session: sess,
		state:   StateHabits,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		month:   now.Month(),
		year:    now.Year(),
	}
	m.habitList = habitlist.New(m.habitItems(), 0, 0)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// habitItems builds the list items with today's completion state.
func (m Model) habitItems() []habitlist.Item {
	habits, err := m.session.Habits()
	if err != nil {
		return nil
	}

	today := time.Now()
	key := dateutil.Key(today)

	items := make([]habitlist.Item, len(habits))
	for i, h := range habits {
		items[i] = habitlist.Item{
			Habit:    h,
			IsMarked: h.Completions[key],
			DueToday: stats.IsApplicable(h.Schedule, today),
			Schedule: h.Schedule.String(),
		}
	}
	return items
}

func (m *Model) refreshHabits() {
	m.habitList.SetItems(m.habitItems())
}

// newHabitForm builds the add-habit form. The weekday multi-select only
// matters when the weekly frequency is chosen; a daily habit ignores it.
func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[models.FrequencyType]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
				).
				Value(&fm.Frequency),
			huh.NewMultiSelect[time.Weekday]().
				Title("Weekdays").
				Description("Only used for weekly habits").
				Options(
					huh.NewOption("Sunday", time.Sunday),
					huh.NewOption("Monday", time.Monday),
					huh.NewOption("Tuesday", time.Tuesday),
					huh.NewOption("Wednesday", time.Wednesday),
					huh.NewOption("Thursday", time.Thursday),
					huh.NewOption("Friday", time.Friday),
					huh.NewOption("Saturday", time.Saturday),
				).
				Value(&fm.Weekdays),
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", models.DifficultyEasy),
					huh.NewOption("Medium", models.DifficultyMedium),
					huh.NewOption("Hard", models.DifficultyHard),
				).
				Value(&fm.Difficulty),
		),
	).WithTheme(huh.ThemeDracula())
}

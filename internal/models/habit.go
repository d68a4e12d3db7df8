package models

import (
	"strings"
	"time"
)

type FrequencyType string

const (
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Schedule describes when a habit is expected to be performed. Weekdays is
// only meaningful when Frequency is FrequencyWeekly; a weekly schedule with
// an empty weekday set matches no day.
type Schedule struct {
	Frequency FrequencyType  `json:"frequency"`
	Weekdays  []time.Weekday `json:"weekdays,omitempty"`
}

// String renders the schedule for display, e.g. "daily" or "weekly on Mon,Wed".
func (s Schedule) String() string {
	switch s.Frequency {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		if len(s.Weekdays) == 0 {
			return "weekly (no weekdays selected)"
		}
		days := make([]string, len(s.Weekdays))
		for i, wd := range s.Weekdays {
			days[i] = wd.String()[:3]
		}
		return "weekly on " + strings.Join(days, ",")
	default:
		return "unknown"
	}
}

// Habit represents a recurring practice to track.
//
// Completions maps date-keys (YYYY-MM-DD) to a presence marker: a key being
// present means the habit was completed that day. CurrentStreak and
// LongestStreak are a denormalized cache recomputed on every completion
// mutation; they must always be recomputable from Completions and Schedule.
type Habit struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Schedule      Schedule        `json:"schedule"`
	Difficulty    Difficulty      `json:"difficulty"`
	Completions   map[string]bool `json:"completions"`
	CurrentStreak int             `json:"current_streak"`
	LongestStreak int             `json:"longest_streak"`
	CreatedAt     time.Time       `json:"created_at"`
}

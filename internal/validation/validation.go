// Package validation checks a user record for data-health problems: habits
// that can no longer be trusted (malformed completion keys, impossible
// weekday sets, broken streak caches) and out-of-range journal data.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkarlsen/tally/internal/constants"
	"github.com/mkarlsen/tally/internal/dateutil"
	"github.com/mkarlsen/tally/internal/models"
	"github.com/mkarlsen/tally/internal/stats"
)

type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidDateKey     ConflictType = "invalid_date_key"
	ConflictInvalidWeekday     ConflictType = "invalid_weekday"
	ConflictStreakCacheInvalid ConflictType = "streak_cache_invalid"
	ConflictMoodOutOfRange     ConflictType = "mood_out_of_range"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type Result struct {
	Conflicts []Conflict
}

func (r Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateUser inspects a user's habits, moods, and reflections and reports
// every conflict found. It never mutates the record.
func (v *Validator) ValidateUser(user models.User) Result {
	var result Result

	names := make(map[string]bool)
	for _, habit := range user.Habits {
		name := strings.ToLower(habit.Name)
		if names[name] {
			result.add(ConflictDuplicateHabitName, fmt.Sprintf("habit name %q is used more than once", habit.Name))
		}
		names[name] = true

		for key := range habit.Completions {
			if !canonicalKey(key) {
				result.add(ConflictInvalidDateKey, fmt.Sprintf("habit %q has malformed completion key %q", habit.Name, key))
			}
		}

		for _, wd := range habit.Schedule.Weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				result.add(ConflictInvalidWeekday, fmt.Sprintf("habit %q has out-of-range weekday %d", habit.Name, wd))
			}
		}

		if habit.CurrentStreak < 0 || habit.LongestStreak < 0 {
			result.add(ConflictStreakCacheInvalid, fmt.Sprintf("habit %q has a negative streak counter", habit.Name))
		}
		if habit.LongestStreak < habit.CurrentStreak {
			result.add(ConflictStreakCacheInvalid, fmt.Sprintf("habit %q longest streak %d is below current streak %d", habit.Name, habit.LongestStreak, habit.CurrentStreak))
		}
		// The longest streak is derivable from history alone, so a cached
		// value that disagrees with recomputation cannot have come from the
		// engine. The current streak is allowed to be stale: it was computed
		// with the last toggled date as its reference. Malformed keys make
		// recomputation fail and are already reported above.
		if recomputed, err := stats.ComputeStreaks(habit.Schedule, habit.Completions, time.Now()); err == nil && recomputed.Longest != habit.LongestStreak {
			result.add(ConflictStreakCacheInvalid, fmt.Sprintf("habit %q caches longest streak %d but its completions yield %d", habit.Name, habit.LongestStreak, recomputed.Longest))
		}
	}

	for key, score := range user.Moods {
		if !canonicalKey(key) {
			result.add(ConflictInvalidDateKey, fmt.Sprintf("mood entry has malformed date key %q", key))
		}
		if score < constants.MoodMin || score > constants.MoodMax {
			result.add(ConflictMoodOutOfRange, fmt.Sprintf("mood score %d on %s is outside %d-%d", score, key, constants.MoodMin, constants.MoodMax))
		}
	}

	for key := range user.Reflections {
		if !canonicalKey(key) {
			result.add(ConflictInvalidDateKey, fmt.Sprintf("reflection entry has malformed date key %q", key))
		}
	}

	return result
}

func (r *Result) add(t ConflictType, msg string) {
	r.Conflicts = append(r.Conflicts, Conflict{Type: t, Message: msg})
}

// canonicalKey reports whether key parses and round-trips to itself, which
// rules out semantically duplicate spellings of the same day.
func canonicalKey(key string) bool {
	t, err := dateutil.ParseKey(key)
	if err != nil {
		return false
	}
	return dateutil.Key(t) == key
}

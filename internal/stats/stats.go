// Package stats computes streaks and time-bucketed completion aggregates for
// habits. All functions are pure: they read a habit's completion set and a
// reference date and return derived values without mutating their inputs.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/mkarlsen/tally/internal/constants"
	"github.com/mkarlsen/tally/internal/dateutil"
	"github.com/mkarlsen/tally/internal/models"
)

// Streaks is the pair of derived streak counters cached on a habit.
type Streaks struct {
	Current int
	Longest int
}

// Summary is a habit's lifetime statistics as of a reference date.
type Summary struct {
	TotalCompletions int
	CompletionRate   float64
	CurrentStreak    int
	LongestStreak    int
}

// DayPoint is one calendar day in a monthly series.
type DayPoint struct {
	Day       int
	Completed int // 0 or 1
	DateKey   string
}

// MonthPoint is one month in a yearly series.
type MonthPoint struct {
	Label          string
	CompletionRate float64
	Completions    int
}

// ToggleCompletion returns a copy of the completion set with the given
// date-key flipped: inserted if absent, removed if present. Streaks are not
// updated here; the caller must recompute them with the same reference date
// that was toggled.
func ToggleCompletion(completions map[string]bool, key string) map[string]bool {
	next := make(map[string]bool, len(completions)+1)
	for k, v := range completions {
		next[k] = v
	}
	if _, ok := next[key]; ok {
		delete(next, key)
	} else {
		next[key] = true
	}
	return next
}

// ComputeStreaks derives the current and longest streaks from a completion set.
//
// The current streak walks backward one calendar day at a time from ref,
// counting consecutive present days, and stops at the first gap or at
// constants.StreakScanCap days. Every calendar day is required for continuity
// regardless of the schedule; the longest-streak search below is the only
// place weekly frequency changes the math.
//
// The longest streak scans the sorted date-keys and extends a run while the
// gap between consecutive dates is exactly one day, or up to seven days for a
// weekly schedule. Weekday alignment of the gap days is not checked.
//
// A malformed date-key in the completion set is a caller contract violation
// and is reported as an error rather than swallowed.
func ComputeStreaks(schedule models.Schedule, completions map[string]bool, ref time.Time) (Streaks, error) {
	current := 0
	day := dateutil.Midnight(ref)
	for current < constants.StreakScanCap {
		if _, ok := completions[dateutil.Key(day)]; !ok {
			break
		}
		current++
		day = day.AddDate(0, 0, -1)
	}

	keys := make([]string, 0, len(completions))
	for k := range completions {
		keys = append(keys, k)
	}
	// Date-keys are zero-padded, so lexicographic order is chronological.
	sort.Strings(keys)

	dates := make([]time.Time, len(keys))
	for i, k := range keys {
		d, err := dateutil.ParseKey(k)
		if err != nil {
			return Streaks{}, err
		}
		dates[i] = d
	}

	weekly := schedule.Frequency == models.FrequencyWeekly

	longest := 0
	for i := range dates {
		run := 1
		for j := i + 1; j < len(dates); j++ {
			gap := dateutil.DaysBetween(dates[j-1], dates[j])
			if gap == 1 || (weekly && gap <= 7) {
				run++
			} else {
				break
			}
		}
		if run > longest {
			longest = run
		}
	}

	// A streak still in progress counts as the longest if it exceeds history.
	if current > longest {
		longest = current
	}

	return Streaks{Current: current, Longest: longest}, nil
}

// Summarize returns a habit's lifetime stats as of today. The streak fields
// pass through the habit's cached values, which are assumed consistent via
// ComputeStreaks. The completion rate is total completions over days since
// creation, as a percentage rounded to one decimal place, or 0 when the habit
// was created today or in the future.
func Summarize(habit models.Habit, today time.Time) Summary {
	total := len(habit.Completions)

	rate := 0.0
	if days := dateutil.DaysBetween(habit.CreatedAt, today); days > 0 {
		rate = round1(float64(total) / float64(days) * 100)
	}

	return Summary{
		TotalCompletions: total,
		CompletionRate:   rate,
		CurrentStreak:    habit.CurrentStreak,
		LongestStreak:    habit.LongestStreak,
	}
}

// MonthlySeries produces one point per calendar day of the given month,
// ascending, with Completed reflecting presence in the habit's completion set.
func MonthlySeries(habit models.Habit, month time.Month, year int) []DayPoint {
	n := dateutil.DaysInMonth(month, year)
	series := make([]DayPoint, 0, n)
	for d := 1; d <= n; d++ {
		key := dateutil.Key(time.Date(year, month, d, 0, 0, 0, 0, time.Local))
		completed := 0
		if _, ok := habit.Completions[key]; ok {
			completed = 1
		}
		series = append(series, DayPoint{Day: d, Completed: completed, DateKey: key})
	}
	return series
}

// YearlySeries produces exactly twelve points, one per month, each with the
// month's completion count and completion rate over its calendar days.
func YearlySeries(habit models.Habit, year int) []MonthPoint {
	series := make([]MonthPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		days := MonthlySeries(habit, m, year)
		completed := 0
		for _, p := range days {
			completed += p.Completed
		}
		series = append(series, MonthPoint{
			Label:          dateutil.MonthLabel(m),
			CompletionRate: round1(float64(completed) / float64(len(days)) * 100),
			Completions:    completed,
		})
	}
	return series
}

// IsApplicable reports whether a habit is expected on the given date. Daily
// habits apply every day. Weekly habits apply only on their selected
// weekdays; an empty weekday set matches nothing.
func IsApplicable(schedule models.Schedule, date time.Time) bool {
	if schedule.Frequency != models.FrequencyWeekly {
		return true
	}
	for _, wd := range schedule.Weekdays {
		if wd == date.Weekday() {
			return true
		}
	}
	return false
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

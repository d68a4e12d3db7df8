package stats

import (
	"testing"
	"time"

	"github.com/mkarlsen/tally/internal/constants"
	"github.com/mkarlsen/tally/internal/dateutil"
	"github.com/mkarlsen/tally/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func completionSet(keys ...string) map[string]bool {
	c := make(map[string]bool, len(keys))
	for _, k := range keys {
		c[k] = true
	}
	return c
}

var (
	daily  = models.Schedule{Frequency: models.FrequencyDaily}
	weekly = models.Schedule{Frequency: models.FrequencyWeekly}
)

func mustStreaks(t *testing.T, schedule models.Schedule, completions map[string]bool, ref time.Time) Streaks {
	t.Helper()
	s, err := ComputeStreaks(schedule, completions, ref)
	if err != nil {
		t.Fatalf("ComputeStreaks failed: %v", err)
	}
	return s
}

func TestComputeStreaks_EmptyCompletions(t *testing.T) {
	s := mustStreaks(t, daily, map[string]bool{}, date(2024, time.June, 15))
	if s.Current != 0 || s.Longest != 0 {
		t.Errorf("expected {0 0} for empty completions, got %+v", s)
	}
}

func TestComputeStreaks_CurrentStreakStopsAtGap(t *testing.T) {
	// today, today-1, today-2 present; today-3 absent
	completions := completionSet("2024-06-15", "2024-06-14", "2024-06-13", "2024-06-11")

	s := mustStreaks(t, daily, completions, date(2024, time.June, 15))
	if s.Current != 3 {
		t.Errorf("expected current streak 3, got %d", s.Current)
	}
}

func TestComputeStreaks_NoCompletionToday(t *testing.T) {
	completions := completionSet("2024-06-14", "2024-06-13")

	s := mustStreaks(t, daily, completions, date(2024, time.June, 15))
	if s.Current != 0 {
		t.Errorf("expected current streak 0 when reference day is missing, got %d", s.Current)
	}
	if s.Longest != 2 {
		t.Errorf("expected longest streak 2, got %d", s.Longest)
	}
}

func TestComputeStreaks_WorkedExample(t *testing.T) {
	// Daily habit, completions Jan 1-5 2024 except Jan 3, reference Jan 5.
	// Runs are {01,02} and {04,05}, so current=2 and longest=2.
	completions := completionSet("2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05")

	s := mustStreaks(t, daily, completions, date(2024, time.January, 5))
	if s.Current != 2 {
		t.Errorf("expected current streak 2, got %d", s.Current)
	}
	if s.Longest != 2 {
		t.Errorf("expected longest streak 2, got %d", s.Longest)
	}
}

func TestComputeStreaks_LongestNeverBelowCurrent(t *testing.T) {
	// An in-progress run longer than anything in history becomes the longest.
	completions := completionSet(
		"2024-06-13", "2024-06-14", "2024-06-15",
		"2024-06-01",
	)

	s := mustStreaks(t, daily, completions, date(2024, time.June, 15))
	if s.Current != 3 {
		t.Errorf("expected current streak 3, got %d", s.Current)
	}
	if s.Longest < s.Current {
		t.Errorf("longest streak %d is below current streak %d", s.Longest, s.Current)
	}
}

func TestComputeStreaks_WeeklyGapTolerance(t *testing.T) {
	// Weekly schedules treat completions up to seven days apart as one run,
	// with no check that the gap days align with the selected weekdays.
	completions := completionSet("2024-06-01", "2024-06-08", "2024-06-15")

	s := mustStreaks(t, weekly, completions, date(2024, time.June, 15))
	if s.Longest != 3 {
		t.Errorf("expected weekly longest streak 3, got %d", s.Longest)
	}

	// The same set under a daily schedule is three separate one-day runs.
	s = mustStreaks(t, daily, completions, date(2024, time.June, 15))
	if s.Longest != 1 {
		t.Errorf("expected daily longest streak 1, got %d", s.Longest)
	}
}

func TestComputeStreaks_WeeklyGapOverSevenDaysBreaks(t *testing.T) {
	completions := completionSet("2024-06-01", "2024-06-09")

	s := mustStreaks(t, weekly, completions, date(2024, time.June, 9))
	if s.Longest != 1 {
		t.Errorf("expected 8-day gap to break a weekly run, got longest %d", s.Longest)
	}
}

func TestComputeStreaks_WeeklyCurrentStillRequiresEveryDay(t *testing.T) {
	// The backward walk ignores the schedule: a weekly habit completed only
	// on Mondays has a current streak of 1 on the Monday itself.
	monday := date(2024, time.June, 10)
	completions := completionSet("2024-06-10", "2024-06-03")

	s := mustStreaks(t, models.Schedule{
		Frequency: models.FrequencyWeekly,
		Weekdays:  []time.Weekday{time.Monday},
	}, completions, monday)

	if s.Current != 1 {
		t.Errorf("expected current streak 1 for weekly habit with daily-walk semantics, got %d", s.Current)
	}
	if s.Longest != 2 {
		t.Errorf("expected longest streak 2 via gap tolerance, got %d", s.Longest)
	}
}

func TestComputeStreaks_ScanCap(t *testing.T) {
	// Two full years of unbroken completions: the backward walk must stop at
	// the cap instead of scanning the whole map.
	completions := make(map[string]bool)
	ref := date(2024, time.December, 31)
	day := ref
	for i := 0; i < 2*constants.StreakScanCap; i++ {
		completions[dateutil.Key(day)] = true
		day = day.AddDate(0, 0, -1)
	}

	s := mustStreaks(t, daily, completions, ref)
	if s.Current != constants.StreakScanCap {
		t.Errorf("expected current streak capped at %d, got %d", constants.StreakScanCap, s.Current)
	}
}

func TestComputeStreaks_MalformedKey(t *testing.T) {
	completions := completionSet("2024-06-15", "not-a-date")

	if _, err := ComputeStreaks(daily, completions, date(2024, time.June, 15)); err == nil {
		t.Error("expected error for malformed date key")
	}
}

func TestToggleCompletion_RoundTrip(t *testing.T) {
	original := completionSet("2024-06-01", "2024-06-02")

	once := ToggleCompletion(original, "2024-06-03")
	if _, ok := once["2024-06-03"]; !ok {
		t.Error("expected key to be inserted on first toggle")
	}

	twice := ToggleCompletion(once, "2024-06-03")
	if len(twice) != len(original) {
		t.Errorf("expected round trip to restore original size %d, got %d", len(original), len(twice))
	}
	for k := range original {
		if _, ok := twice[k]; !ok {
			t.Errorf("expected key %s to survive round trip", k)
		}
	}
}

func TestToggleCompletion_DoesNotMutateInput(t *testing.T) {
	original := completionSet("2024-06-01")

	_ = ToggleCompletion(original, "2024-06-01")
	if _, ok := original["2024-06-01"]; !ok {
		t.Error("input completion set was mutated")
	}
}

func TestSummarize_CompletionRate(t *testing.T) {
	today := date(2024, time.June, 15)

	tests := []struct {
		name        string
		createdAt   time.Time
		completions int
		want        float64
	}{
		{"five of ten days", today.AddDate(0, 0, -10), 5, 50.0},
		{"created today", today, 3, 0},
		{"created in the future", today.AddDate(0, 0, 2), 1, 0},
		{"one of three days", today.AddDate(0, 0, -3), 1, 33.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit := models.Habit{
				Schedule:    daily,
				CreatedAt:   tt.createdAt,
				Completions: make(map[string]bool),
			}
			for i := 0; i < tt.completions; i++ {
				habit.Completions[dateutil.Key(today.AddDate(0, 0, -i))] = true
			}

			got := Summarize(habit, today)
			if got.CompletionRate != tt.want {
				t.Errorf("expected completion rate %.1f, got %.1f", tt.want, got.CompletionRate)
			}
			if got.TotalCompletions != tt.completions {
				t.Errorf("expected %d total completions, got %d", tt.completions, got.TotalCompletions)
			}
		})
	}
}

func TestSummarize_PassesThroughCachedStreaks(t *testing.T) {
	habit := models.Habit{
		Schedule:      daily,
		CreatedAt:     date(2024, time.January, 1),
		CurrentStreak: 4,
		LongestStreak: 9,
	}

	got := Summarize(habit, date(2024, time.June, 15))
	if got.CurrentStreak != 4 || got.LongestStreak != 9 {
		t.Errorf("expected cached streaks {4 9}, got {%d %d}", got.CurrentStreak, got.LongestStreak)
	}
}

func TestMonthlySeries_Shape(t *testing.T) {
	tests := []struct {
		month time.Month
		year  int
		days  int
	}{
		{time.February, 2024, 29}, // leap year
		{time.February, 2023, 28},
		{time.June, 2024, 30},
		{time.December, 2024, 31},
	}

	habit := models.Habit{
		Schedule:    daily,
		Completions: completionSet("2024-02-01", "2024-02-15"),
	}

	for _, tt := range tests {
		series := MonthlySeries(habit, tt.month, tt.year)
		if len(series) != tt.days {
			t.Errorf("%s %d: expected %d entries, got %d", tt.month, tt.year, tt.days, len(series))
			continue
		}
		for i, p := range series {
			if p.Day != i+1 {
				t.Errorf("%s %d: expected day %d at index %d, got %d", tt.month, tt.year, i+1, i, p.Day)
			}
			if p.Completed != 0 && p.Completed != 1 {
				t.Errorf("%s %d: completed must be 0 or 1, got %d", tt.month, tt.year, p.Completed)
			}
		}
	}
}

func TestMonthlySeries_MarksCompletions(t *testing.T) {
	habit := models.Habit{
		Schedule:    daily,
		Completions: completionSet("2024-06-01", "2024-06-15"),
	}

	series := MonthlySeries(habit, time.June, 2024)
	for _, p := range series {
		want := 0
		if p.Day == 1 || p.Day == 15 {
			want = 1
		}
		if p.Completed != want {
			t.Errorf("day %d: expected completed=%d, got %d", p.Day, want, p.Completed)
		}
	}
}

func TestYearlySeries_TwelveEntries(t *testing.T) {
	habit := models.Habit{Schedule: daily}

	series := YearlySeries(habit, 2024)
	if len(series) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(series))
	}
	if series[0].Label != "Jan" || series[11].Label != "Dec" {
		t.Errorf("expected labels Jan..Dec, got %s..%s", series[0].Label, series[11].Label)
	}
	for _, p := range series {
		if p.CompletionRate != 0 || p.Completions != 0 {
			t.Errorf("%s: expected zero rate for empty habit, got %+v", p.Label, p)
		}
	}
}

func TestYearlySeries_Rates(t *testing.T) {
	// 15 of 30 days in June 2024.
	habit := models.Habit{Schedule: daily, Completions: make(map[string]bool)}
	for d := 1; d <= 15; d++ {
		habit.Completions[dateutil.Key(date(2024, time.June, d))] = true
	}

	series := YearlySeries(habit, 2024)
	june := series[5]
	if june.Label != "Jun" {
		t.Fatalf("expected Jun at index 5, got %s", june.Label)
	}
	if june.Completions != 15 {
		t.Errorf("expected 15 completions in June, got %d", june.Completions)
	}
	if june.CompletionRate != 50.0 {
		t.Errorf("expected June rate 50.0, got %.1f", june.CompletionRate)
	}
}

func TestIsApplicable(t *testing.T) {
	monWedFri := models.Schedule{
		Frequency: models.FrequencyWeekly,
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	}

	tests := []struct {
		name     string
		schedule models.Schedule
		date     time.Time
		want     bool
	}{
		{"daily always applies", daily, date(2024, time.June, 15), true},
		{"weekly on selected weekday", monWedFri, date(2024, time.June, 12), true}, // Wednesday
		{"weekly off selected weekday", monWedFri, date(2024, time.June, 15), false}, // Saturday
		{"weekly with empty set matches nothing", weekly, date(2024, time.June, 12), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsApplicable(tt.schedule, tt.date); got != tt.want {
				t.Errorf("IsApplicable(%v, %s) = %v, want %v", tt.schedule, dateutil.Key(tt.date), got, tt.want)
			}
		})
	}
}

package cli

import (
	"testing"
	"time"

	"github.com/mkarlsen/tally/internal/models"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input string
		want  []time.Weekday
	}{
		{"mon", []time.Weekday{time.Monday}},
		{"Mon,Wed,Fri", []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		{"sunday,saturday", []time.Weekday{time.Sunday, time.Saturday}},
		{"0,3,6", []time.Weekday{time.Sunday, time.Wednesday, time.Saturday}},
		{" tue , thu ", []time.Weekday{time.Tuesday, time.Thursday}},
	}

	for _, tt := range tests {
		got, err := parseWeekdays(tt.input)
		if err != nil {
			t.Errorf("parseWeekdays(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseWeekdays(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseWeekdaysInvalid(t *testing.T) {
	for _, input := range []string{"funday", "7", "-1", "mon,funday"} {
		if _, err := parseWeekdays(input); err == nil {
			t.Errorf("parseWeekdays(%q) expected error", input)
		}
	}
}

func TestParseFrequency(t *testing.T) {
	if got, err := parseFrequency("Daily"); err != nil || got != models.FrequencyDaily {
		t.Errorf("parseFrequency(Daily) = %v, %v", got, err)
	}
	if got, err := parseFrequency("weekly"); err != nil || got != models.FrequencyWeekly {
		t.Errorf("parseFrequency(weekly) = %v, %v", got, err)
	}
	if _, err := parseFrequency("monthly"); err == nil {
		t.Error("parseFrequency(monthly) expected error")
	}
}

func TestParseDifficulty(t *testing.T) {
	for input, want := range map[string]models.Difficulty{
		"easy":   models.DifficultyEasy,
		"Medium": models.DifficultyMedium,
		"HARD":   models.DifficultyHard,
	} {
		got, err := parseDifficulty(input)
		if err != nil || got != want {
			t.Errorf("parseDifficulty(%q) = %v, %v, want %v", input, got, err, want)
		}
	}
	if _, err := parseDifficulty("extreme"); err == nil {
		t.Error("parseDifficulty(extreme) expected error")
	}
}

func TestParseDateArg(t *testing.T) {
	got, err := parseDateArg("2024-06-15")
	if err != nil {
		t.Fatalf("parseDateArg: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.June || got.Day() != 15 {
		t.Errorf("parseDateArg(2024-06-15) = %v", got)
	}

	today, err := parseDateArg("today")
	if err != nil {
		t.Fatalf("parseDateArg(today): %v", err)
	}
	now := time.Now()
	if today.Day() != now.Day() || today.Month() != now.Month() {
		t.Errorf("parseDateArg(today) = %v, want today", today)
	}

	yesterday, err := parseDateArg("yesterday")
	if err != nil {
		t.Fatalf("parseDateArg(yesterday): %v", err)
	}
	wantY := now.AddDate(0, 0, -1)
	if yesterday.Day() != wantY.Day() || yesterday.Month() != wantY.Month() {
		t.Errorf("parseDateArg(yesterday) = %v, want yesterday", yesterday)
	}

	if _, err := parseDateArg("June 15"); err == nil {
		t.Error("parseDateArg(June 15) expected error")
	}
}

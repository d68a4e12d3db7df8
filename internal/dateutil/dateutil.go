package dateutil

import (
	"fmt"
	"math"
	"time"

	"github.com/mkarlsen/tally/internal/constants"
)

// Key returns the date-key (YYYY-MM-DD) for a point in time, in its own location.
func Key(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseKey parses a date-key into midnight local time.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// Midnight truncates a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day difference b-a. Both times are normalized
// to midnight first, so a pair of times on adjacent days always differs by 1
// regardless of their clock components. The division is rounded rather than
// truncated so that 23- and 25-hour DST days still count as one day.
func DaysBetween(a, b time.Time) int {
	a = Midnight(a)
	b = Midnight(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(month time.Month, year int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthLabel returns the short human-readable name for a month ("Jan".."Dec").
func MonthLabel(month time.Month) string {
	return month.String()[:3]
}

package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mkarlsen/tally/internal/constants"
	"github.com/mkarlsen/tally/internal/models"
	"github.com/mkarlsen/tally/internal/session"
	"github.com/mkarlsen/tally/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Session *session.Manager
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err == nil && num >= 0 && num <= 6 {
			weekdays = append(weekdays, time.Weekday(num))
		} else {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
	}

	return weekdays, nil
}

func parseFrequency(s string) (models.FrequencyType, error) {
	switch strings.ToLower(s) {
	case "daily":
		return models.FrequencyDaily, nil
	case "weekly":
		return models.FrequencyWeekly, nil
	default:
		return "", fmt.Errorf("invalid frequency %q (expected daily or weekly)", s)
	}
}

func parseDifficulty(s string) (models.Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return models.DifficultyEasy, nil
	case "medium":
		return models.DifficultyMedium, nil
	case "hard":
		return models.DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q (expected easy, medium, or hard)", s)
	}
}

// parseDateArg parses a date argument, accepting "today", "yesterday", or a
// YYYY-MM-DD date-key.
func parseDateArg(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return time.Now(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1), nil
	}

	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD, 'today', or 'yesterday': %w", err)
	}
	return t, nil
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

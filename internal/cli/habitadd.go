package cli

import (
	"fmt"

	"github.com/mkarlsen/tally/internal/models"
)

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Habit description."`
	Frequency   string `short:"f" help:"Frequency (daily|weekly)." default:"daily"`
	Weekdays    string `short:"w" help:"Comma-separated weekdays for weekly habits (e.g. mon,wed,fri)."`
	Difficulty  string `short:"D" help:"Difficulty (easy|medium|hard)." default:"medium"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	freq, err := parseFrequency(c.Frequency)
	if err != nil {
		return err
	}

	difficulty, err := parseDifficulty(c.Difficulty)
	if err != nil {
		return err
	}

	schedule := models.Schedule{Frequency: freq}
	if freq == models.FrequencyWeekly && c.Weekdays != "" {
		wds, err := parseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		schedule.Weekdays = wds
	}
	if freq == models.FrequencyDaily && c.Weekdays != "" {
		return fmt.Errorf("weekdays only apply to weekly habits")
	}

	habit, err := ctx.Session.AddHabit(c.Name, c.Description, schedule, difficulty)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit %q (%s, %s)\n", habit.Name, habit.Schedule.String(), habit.Difficulty)
	return nil
}

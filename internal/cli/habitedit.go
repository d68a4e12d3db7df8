package cli

import (
	"fmt"

	"github.com/mkarlsen/tally/internal/models"
)

type HabitEditCmd struct {
	Habit       string `arg:"" help:"Habit name or ID."`
	Name        string `help:"New name."`
	Description string `short:"d" help:"New description."`
	Weekdays    string `short:"w" help:"New weekday set for weekly habits."`
	Difficulty  string `short:"D" help:"New difficulty (easy|medium|hard)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Session.Habit(c.Habit)
	if err != nil {
		return err
	}

	changed := false
	if c.Name != "" {
		habit.Name = c.Name
		changed = true
	}
	if c.Description != "" {
		habit.Description = c.Description
		changed = true
	}
	if c.Difficulty != "" {
		difficulty, err := parseDifficulty(c.Difficulty)
		if err != nil {
			return err
		}
		habit.Difficulty = difficulty
		changed = true
	}
	if c.Weekdays != "" {
		if habit.Schedule.Frequency != models.FrequencyWeekly {
			return fmt.Errorf("weekdays only apply to weekly habits")
		}
		wds, err := parseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		habit.Schedule.Weekdays = wds
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change")
	}

	if err := ctx.Session.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit %q\n", habit.Name)
	return nil
}

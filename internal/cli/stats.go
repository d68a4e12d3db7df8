package cli

import (
	"fmt"
	"time"

	"github.com/mkarlsen/tally/internal/stats"
)

type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or ID; omit for all habits."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Session.Habits()
	if err != nil {
		return err
	}

	if c.Habit != "" {
		habit, err := ctx.Session.Habit(c.Habit)
		if err != nil {
			return err
		}
		habits = habits[:0]
		habits = append(habits, habit)
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add'.")
		return nil
	}

	today := time.Now()
	for _, habit := range habits {
		summary := stats.Summarize(habit, today)
		fmt.Printf("%s\n", habit.Name)
		fmt.Printf("  completions: %d\n", summary.TotalCompletions)
		fmt.Printf("  completion rate: %.1f%%\n", summary.CompletionRate)
		fmt.Printf("  current streak: %d\n", summary.CurrentStreak)
		fmt.Printf("  longest streak: %d\n", summary.LongestStreak)
	}

	return nil
}

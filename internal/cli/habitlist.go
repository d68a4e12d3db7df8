package cli

import (
	"fmt"
	"time"

	"github.com/mkarlsen/tally/internal/dateutil"
	"github.com/mkarlsen/tally/internal/stats"
)

type HabitListCmd struct {
	Verbose bool `short:"v" help:"Show IDs and descriptions."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Session.Habits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add'.")
		return nil
	}

	today := time.Now()
	for _, habit := range habits {
		marker := "○"
		if _, ok := habit.Completions[dateutil.Key(today)]; ok {
			marker = "✓"
		}

		due := ""
		if !stats.IsApplicable(habit.Schedule, today) {
			due = "  (not due today)"
		}

		fmt.Printf("%s %-25s %-22s streak %d (best %d)%s\n",
			marker, habit.Name, habit.Schedule.String(), habit.CurrentStreak, habit.LongestStreak, due)

		if c.Verbose {
			fmt.Printf("    id: %s\n", habit.ID)
			if habit.Description != "" {
				fmt.Printf("    %s\n", habit.Description)
			}
		}
	}

	return nil
}

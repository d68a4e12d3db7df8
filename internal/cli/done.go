package cli

import (
	"fmt"

	"github.com/mkarlsen/tally/internal/dateutil"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `arg:"" optional:"" help:"Date to toggle (YYYY-MM-DD, 'today', or 'yesterday')." default:"today"`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	habit, err := ctx.Session.Toggle(c.Habit, date)
	if err != nil {
		return err
	}

	key := dateutil.Key(date)
	if _, ok := habit.Completions[key]; ok {
		fmt.Printf("Marked %q done for %s. Streak: %d (best %d)\n", habit.Name, key, habit.CurrentStreak, habit.LongestStreak)
	} else {
		fmt.Printf("Unmarked %q for %s. Streak: %d (best %d)\n", habit.Name, key, habit.CurrentStreak, habit.LongestStreak)
	}

	return nil
}

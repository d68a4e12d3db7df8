package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkarlsen/tally/internal/stats"
)

type YearCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Year  int    `arg:"" optional:"" help:"Year, defaults to the current year."`
}

func (c *YearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Session.Habit(c.Habit)
	if err != nil {
		return err
	}

	year := c.Year
	if year == 0 {
		year = time.Now().Year()
	}

	series := stats.YearlySeries(habit, year)

	fmt.Printf("%s — %d\n\n", habit.Name, year)
	for _, p := range series {
		// One bar segment per 5% so a full month is 20 wide.
		bar := strings.Repeat("█", int(p.CompletionRate/5))
		fmt.Printf("%s %-20s %5.1f%% (%d)\n", p.Label, bar, p.CompletionRate, p.Completions)
	}

	return nil
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkarlsen/tally/internal/stats"
)

type MonthCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Month int    `short:"m" help:"Month (1-12), defaults to the current month."`
	Year  int    `short:"y" help:"Year, defaults to the current year."`
}

func (c *MonthCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Session.Habit(c.Habit)
	if err != nil {
		return err
	}

	now := time.Now()
	month := time.Month(c.Month)
	if c.Month == 0 {
		month = now.Month()
	} else if c.Month < 1 || c.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	year := c.Year
	if year == 0 {
		year = now.Year()
	}

	series := stats.MonthlySeries(habit, month, year)

	fmt.Printf("%s — %s %d\n\n", habit.Name, month, year)
	fmt.Println("Su Mo Tu We Th Fr Sa")

	// Pad the first week so day 1 lands under its weekday column.
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	var line []string
	for i := 0; i < int(first.Weekday()); i++ {
		line = append(line, "  ")
	}

	completed := 0
	for _, p := range series {
		cell := fmt.Sprintf("%2d", p.Day)
		if p.Completed == 1 {
			cell = " ●"
			completed++
		}
		line = append(line, cell)
		if len(line) == 7 {
			fmt.Println(strings.Join(line, " "))
			line = line[:0]
		}
	}
	if len(line) > 0 {
		fmt.Println(strings.Join(line, " "))
	}

	fmt.Printf("\n%d of %d days completed\n", completed, len(series))
	return nil
}

package cli

import (
	"fmt"

	"github.com/mkarlsen/tally/internal/constants"
	"github.com/mkarlsen/tally/internal/dateutil"
)

type MoodCmd struct {
	Score int    `arg:"" optional:"" help:"Mood score (1-5); omit to show the recorded mood."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD, 'today', or 'yesterday')." default:"today"`
}

func (c *MoodCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	if c.Score == 0 {
		score, ok, err := ctx.Session.Mood(date)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No mood recorded for %s\n", dateutil.Key(date))
			return nil
		}
		fmt.Printf("Mood for %s: %d/%d\n", dateutil.Key(date), score, constants.MoodMax)
		return nil
	}

	if err := ctx.Session.SetMood(date, c.Score); err != nil {
		return err
	}

	fmt.Printf("Recorded mood %d/%d for %s\n", c.Score, constants.MoodMax, dateutil.Key(date))
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/mkarlsen/tally/internal/dateutil"
)

type ReflectCmd struct {
	Text []string `arg:"" optional:"" help:"Reflection text; omit to show the recorded entry."`
	Date string   `short:"d" help:"Date (YYYY-MM-DD, 'today', or 'yesterday')." default:"today"`
}

func (c *ReflectCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	if len(c.Text) == 0 {
		text, ok, err := ctx.Session.Reflection(date)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No reflection recorded for %s\n", dateutil.Key(date))
			return nil
		}
		fmt.Printf("%s: %s\n", dateutil.Key(date), text)
		return nil
	}

	if err := ctx.Session.SetReflection(date, strings.Join(c.Text, " ")); err != nil {
		return err
	}

	fmt.Printf("Saved reflection for %s\n", dateutil.Key(date))
	return nil
}

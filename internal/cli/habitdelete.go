package cli

import "fmt"

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Session.Habit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Session.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %q and its history\n", habit.Name)
	return nil
}

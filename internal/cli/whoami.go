package cli

import "fmt"

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := ctx.Session.Current()
	if err != nil {
		return err
	}

	fmt.Printf("%s (member since %s, %d habits)\n", user.Username, user.CreatedAt.Format("2006-01-02"), len(user.Habits))
	return nil
}

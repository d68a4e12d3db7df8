package cli

import (
	"errors"
	"fmt"

	"github.com/mkarlsen/tally/internal/keyring"
)

type LogoutCmd struct {
	Forget bool `short:"f" help:"Also forget credentials remembered in the OS keyring."`
}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Session.SignOut(); err != nil {
		return err
	}

	if c.Forget {
		if err := keyring.Forget(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}

	fmt.Println("Signed out.")
	return nil
}

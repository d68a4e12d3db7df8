package cli

import (
	"fmt"

	"github.com/mkarlsen/tally/internal/logger"
)

type SignupCmd struct {
	Username string `arg:"" help:"Username for the new account."`
	Password string `short:"p" help:"Password (prompted when omitted)."`
}

func (c *SignupCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	password := c.Password
	if password == "" {
		var err error
		password, err = promptPassword("Password")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	user, err := ctx.Session.SignUp(c.Username, password)
	if err != nil {
		return err
	}

	logger.Info("user signed up", "username", user.Username)
	fmt.Printf("Welcome, %s! You are now signed in.\n", user.Username)
	return nil
}

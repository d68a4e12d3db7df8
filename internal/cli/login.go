package cli

import (
	"errors"
	"fmt"

	"github.com/mkarlsen/tally/internal/keyring"
	"github.com/mkarlsen/tally/internal/logger"
)

type LoginCmd struct {
	Username string `arg:"" optional:"" help:"Username (omit to use remembered credentials)."`
	Password string `short:"p" help:"Password (prompted when omitted)."`
	Remember bool   `short:"r" help:"Remember these credentials in the OS keyring."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	username := c.Username
	password := c.Password

	if username == "" {
		var err error
		username, password, err = keyring.Remembered()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return fmt.Errorf("no remembered credentials, run 'tally login <username>'")
			}
			return err
		}
	} else if password == "" {
		var err error
		password, err = promptPassword("Password")
		if err != nil {
			return err
		}
	}

	user, err := ctx.Session.SignIn(username, password)
	if err != nil {
		return err
	}

	if c.Remember {
		if err := keyring.Remember(username, password); err != nil {
			// A keyring failure should not undo a successful sign-in.
			logger.Warn("failed to remember credentials", "error", err)
			fmt.Printf("Warning: could not store credentials in keyring: %v\n", err)
		}
	}

	logger.Info("user signed in", "username", user.Username)
	fmt.Printf("Signed in as %s.\n", user.Username)
	return nil
}

package cli

import (
	"fmt"

	"github.com/mkarlsen/tally/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	user, err := ctx.Session.Current()
	if err != nil {
		return err
	}

	result := validation.New().ValidateUser(user)
	if !result.HasConflicts() {
		fmt.Println("No problems found.")
		return nil
	}

	for _, conflict := range result.Conflicts {
		fmt.Printf("[%s] %s\n", conflict.Type, conflict.Message)
	}
	return fmt.Errorf("found %d problem(s)", len(result.Conflicts))
}

package cli

import "fmt"

type ThemeCmd struct {
	Name string `arg:"" optional:"" help:"Theme name to set; omit to show the current theme."`
}

func (c *ThemeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Name == "" {
		theme, err := ctx.Store.GetTheme()
		if err != nil {
			return err
		}
		if theme == "" {
			theme = "default"
		}
		fmt.Printf("Theme: %s\n", theme)
		return nil
	}

	if err := ctx.Store.SetTheme(c.Name); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", c.Name)
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mkarlsen/tally/internal/cli"
	"github.com/mkarlsen/tally/internal/logger"
	"github.com/mkarlsen/tally/internal/session"
	"github.com/mkarlsen/tally/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/tally/tally.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize tally storage."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Signup cli.SignupCmd `cmd:"" help:"Create an account."`
	Login  cli.LoginCmd  `cmd:"" help:"Sign in."`
	Logout cli.LogoutCmd `cmd:"" help:"Sign out."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the signed-in user."`
	Habit  struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits."`
		Edit   cli.HabitEditCmd   `cmd:"" help:"Edit a habit."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits."`
	Done     cli.DoneCmd     `cmd:"" help:"Toggle a habit's completion for a day."`
	Mood     cli.MoodCmd     `cmd:"" help:"Record today's mood."`
	Reflect  cli.ReflectCmd  `cmd:"" help:"Write a daily reflection."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show a habit's statistics."`
	Month    cli.MonthCmd    `cmd:"" help:"Show a habit's month calendar."`
	Year     cli.YearCmd     `cmd:"" help:"Show a habit's yearly overview."`
	Theme    cli.ThemeCmd    `cmd:"" help:"Get or set the UI theme."`
	Validate cli.ValidateCmd `cmd:"" help:"Validate stored data."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tally"),
		kong.Description("Habit tracker with streaks, moods, and reflections"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Session: session.New(store),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitbreaker/internal/cli"
	"github.com/julianstephens/habitbreaker/internal/cli/backups"
	"github.com/julianstephens/habitbreaker/internal/cli/habits"
	"github.com/julianstephens/habitbreaker/internal/cli/system"
	"github.com/julianstephens/habitbreaker/internal/constants"
	apperrors "github.com/julianstephens/habitbreaker/internal/errors"
	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string (no password)." default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitbreaker storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Apply pending database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run storage and schema health checks."`

	Start   habits.StartCmd   `cmd:"" help:"Register a user."`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits."`
	Success habits.SuccessCmd `cmd:"" help:"Report a day without the habit."`
	Break   habits.BreakCmd   `cmd:"" help:"Report a relapse."`
	Stats   habits.StatsCmd   `cmd:"" help:"Show statistics for the active habit."`
	History habits.HistoryCmd `cmd:"" help:"Show recent daily reports."`

	Chat  system.ChatCmd  `cmd:"" help:"Chat with the bot in the terminal."`
	Serve system.ServeCmd `cmd:"" help:"Serve habit tools over MCP on stdio."`

	Backup   backups.BackupCmd `cmd:"" help:"Manage database backups."`
	Settings system.ConfigCmd  `cmd:"" name:"config" help:"Manage the stored database connection."`
}

// noLoad lists commands that open storage themselves, or never touch it.
var noLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"config":  true,
	"backup":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Quit one bad habit at a time: daily check-ins, streaks and statistics."),
		kong.UsageOnError(),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"history_limit":  strconv.Itoa(constants.DefaultHistoryLimit),
		},
	)

	configDir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	command := strings.Fields(ctx.Command())[0]
	if !noLoad[command] {
		if err := store.Load(); err != nil {
			_ = store.Close()
			apperrors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "storage", store.GetConfigPath())
	if err := ctx.Run(cli.NewContext(store)); err != nil {
		_ = store.Close()
		apperrors.Fatal(err)
	}
}

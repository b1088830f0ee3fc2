package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/switchctl/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
	OpID   string
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:".switchctl.yaml"`
	Dir     string           `short:"C" help:"Working directory containing the codebase" placeholder:"PATH"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init    InitCmd    `cmd:"" help:"Create the baseline and edit-variant branches"`
	Switch  SwitchCmd  `cmd:"" help:"Switch to an edit variant, resolving a dirty tree first"`
	Status  StatusCmd  `cmd:"" help:"Show the current state and recent history"`
	Archive ArchiveCmd `cmd:"" help:"Package the repository into a zip and remove managed branches"`
	Reset   ResetCmd   `cmd:"" help:"Delete managed branches and restore the initial state"`
	Watch   WatchCmd   `cmd:"" help:"Auto-commit checkpoints while editing on a variant branch"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

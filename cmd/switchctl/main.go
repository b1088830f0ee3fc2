package main

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/switchctl/cmd/switchctl/commands"
	"git.home.luguber.info/inful/switchctl/internal/config"
	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/logfields"
	"git.home.luguber.info/inful/switchctl/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("switchctl"),
		kong.Description("Maintain three parallel codebase states (a pristine baseline and two edit variants) as git branches."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("switchctl %s (commit %s, built %s)",
				version.Version, version.GitCommit, version.BuildTime),
		},
	)

	// Each invocation gets a short operation id so log lines from one run can
	// be grouped when output is collected by automation.
	opID := uuid.NewString()[:8]
	logger := slog.Default().With(logfields.OpID(opID))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, logger)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		adapter.HandleError(errors.WrapError(err, errors.CategoryConfig, "failed to load configuration").Fatal().Build())
	}
	if cli.Dir != "" {
		cfg.Dir = cli.Dir
	}

	g := &commands.Global{Logger: logger, Config: cfg, OpID: opID}
	if err := ctx.Run(g); err != nil {
		adapter.HandleError(err)
	}
}

package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/switchctl/internal/git"
	"git.home.luguber.info/inful/switchctl/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before a checkpoint commit" default:"2s"`
}

func (w *WatchCmd) Run(g *Global) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher := watch.New(g.Config, git.NewClient(g.Config.Dir)).WithDebounce(w.Debounce)
	return watcher.Run(ctx)
}

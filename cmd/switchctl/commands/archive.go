package commands

import (
	"context"

	"git.home.luguber.info/inful/switchctl/internal/switcher"
)

// ArchiveCmd implements the 'archive' command.
type ArchiveCmd struct{}

func (a *ArchiveCmd) Run(g *Global) error {
	return switcher.New(g.Config).Archive(context.Background())
}

package commands

import (
	"context"

	"git.home.luguber.info/inful/switchctl/internal/switcher"
)

// InitCmd implements the 'init' command.
type InitCmd struct{}

func (i *InitCmd) Run(g *Global) error {
	return switcher.New(g.Config).Initialize(context.Background())
}

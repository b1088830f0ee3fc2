package commands

import (
	"context"

	"git.home.luguber.info/inful/switchctl/internal/switcher"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct{}

func (s *StatusCmd) Run(g *Global) error {
	return switcher.New(g.Config).Status(context.Background())
}

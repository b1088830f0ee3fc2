package commands

import (
	"context"

	"git.home.luguber.info/inful/switchctl/internal/switcher"
)

// SwitchCmd implements the 'switch' command.
type SwitchCmd struct {
	Variant string `arg:"" help:"Edit variant to switch to"`
}

func (s *SwitchCmd) Run(g *Global) error {
	return switcher.New(g.Config).Switch(context.Background(), s.Variant)
}

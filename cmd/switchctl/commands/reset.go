package commands

import (
	"context"

	"git.home.luguber.info/inful/switchctl/internal/switcher"
)

// ResetCmd implements the 'reset' command.
type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt"`
}

func (r *ResetCmd) Run(g *Global) error {
	s := switcher.New(g.Config)
	if r.Yes {
		s.WithConfirmer(switcher.ConfirmFunc(func(string) bool { return true }))
	}
	return s.Reset(context.Background())
}

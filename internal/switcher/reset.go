package switcher

import (
	"context"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/logfields"
)

// Reset restores the codebase to its initial state: untracked files are
// removed and all managed branches deleted. Destructive, so it requires an
// explicit affirmative response first; anything else aborts with no side
// effects.
func (s *Switcher) Reset(ctx context.Context) error {
	s.printf("Reset deletes the managed branches (%s) and restores the codebase to its initial state.\n",
		strings.Join(s.cfg.ManagedBranches(), ", "))
	s.printf("Unsaved work will be lost. Archive first if you want to keep it.\n")

	if !s.confirm.Confirm("Are you sure you want to reset? [y/N]: ") {
		s.printf("Reset aborted.\n")
		return errors.UserError("reset aborted").Build()
	}

	if err := s.requireTool(); err != nil {
		return err
	}
	if err := s.requireRepo(); err != nil {
		return err
	}

	if err := s.git.CleanUntracked(ctx); err != nil {
		slog.Warn("Failed to remove untracked files", logfields.Error(err))
	}
	return s.cleanup(ctx)
}

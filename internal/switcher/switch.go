package switcher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/logfields"
)

// Switch checks out the given edit variant, resolving a dirty working tree
// first. The one discarding transition is baseline to the first variant: that
// preserves the baseline as the pristine starting state at the first fan-out.
// Every other dirty transition auto-commits on the branch being left.
func (s *Switcher) Switch(ctx context.Context, variant string) error {
	if !s.cfg.IsVariant(variant) {
		return errors.StateError(fmt.Sprintf("invalid variant %q, available: %s",
			variant, strings.Join(s.cfg.Variants, ", "))).
			WithContext("variant", variant).
			Build()
	}
	if err := s.requireTool(); err != nil {
		return err
	}
	if err := s.requireRepo(); err != nil {
		return err
	}
	if !s.git.BranchExists(variant) {
		return errors.RepoError(fmt.Sprintf("state %q does not exist, run init first", variant)).Build()
	}

	current := s.git.CurrentBranch(ctx)
	if current == variant {
		s.printf("Already on %s\n", variant)
		return nil
	}

	if s.git.IsDirty(ctx) {
		if current == s.cfg.Baseline && variant == s.cfg.Variants[0] {
			s.printf("Discarding changes from %s to preserve the original state\n", current)
			if err := s.git.HardReset(ctx); err != nil {
				return errors.WrapError(err, errors.CategoryGit, "failed to discard changes").Build()
			}
			if err := s.git.CleanUntracked(ctx); err != nil {
				slog.Warn("Failed to remove untracked files", logfields.Error(err))
			}
		} else {
			s.printf("Auto-committing changes from %s before switching to %s\n", current, variant)
			if err := s.autoCommit(ctx, fmt.Sprintf("Auto-commit from %s before switching to %s", current, variant)); err != nil {
				return err
			}
			if err := s.git.CleanUntracked(ctx); err != nil {
				slog.Warn("Failed to remove untracked files", logfields.Error(err))
			}
		}
	}

	s.printf("Switching to %s...\n", variant)
	if err := s.git.Checkout(ctx, variant); err != nil {
		return errors.WrapError(err, errors.CategoryGit, fmt.Sprintf("failed to switch to %s", variant)).Build()
	}
	s.printf("Now on %s\n", variant)
	return nil
}

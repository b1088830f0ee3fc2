package switcher

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/logfields"
)

// cleanup removes the managed branch references while leaving every file on
// disk untouched. It first lands on a safe branch: the first existing trunk
// candidate, or a new trunk created at the current position when none exists.
// Branch deletion is best-effort per branch.
func (s *Switcher) cleanup(ctx context.Context) error {
	s.printf("Cleaning up managed branches...\n")

	current := s.git.CurrentBranch(ctx)

	safe := ""
	for _, candidate := range s.cfg.TrunkCandidates {
		if s.git.BranchExists(candidate) {
			safe = candidate
			break
		}
	}

	if safe == "" {
		trunk := s.cfg.TrunkCandidates[0]
		s.printf("Creating %s branch...\n", trunk)
		if err := s.git.CreateBranch(ctx, trunk); err != nil {
			return errors.WrapError(err, errors.CategoryGit, "failed to create trunk branch").Build()
		}
	} else if s.cfg.IsManaged(current) {
		s.printf("Switching to %s...\n", safe)
		if err := s.git.Checkout(ctx, safe); err != nil {
			return errors.WrapError(err, errors.CategoryGit, "failed to switch to trunk branch").Build()
		}
	}

	for _, branch := range s.cfg.ManagedBranches() {
		if !s.git.BranchExists(branch) {
			continue
		}
		if err := s.git.DeleteBranchForce(ctx, branch); err != nil {
			slog.Warn("Failed to delete branch", logfields.Branch(branch), logfields.Error(err))
			continue
		}
		s.printf("Deleted %s branch\n", branch)
	}

	s.printf("Cleanup complete: managed branches removed, files kept\n")
	return nil
}

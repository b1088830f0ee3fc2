package switcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/switchctl/internal/archive"
	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
)

// Archive packages the repository, including git metadata, into a timestamped
// zip and tears the managed branches down. A dirty tree is committed first;
// that commit survives even if verification then aborts the archive, so
// nothing the user wrote is lost.
func (s *Switcher) Archive(ctx context.Context) error {
	if err := s.requireTool(); err != nil {
		return err
	}
	if err := s.requireRepo(); err != nil {
		return err
	}

	if s.git.IsDirty(ctx) {
		current := s.git.CurrentBranch(ctx)
		s.printf("Auto-committing changes on %s before archiving\n", current)
		if err := s.autoCommit(ctx, fmt.Sprintf("Auto-commit on %s before archiving", current)); err != nil {
			return err
		}
	}

	if err := s.verifyBranchesDiffer(); err != nil {
		return err
	}

	name := fmt.Sprintf("codebase_%s_%s.zip",
		filepath.Base(s.cfg.Dir), time.Now().Format("20060102_150405"))
	dest := filepath.Join(s.cfg.Dir, name)

	s.printf("Creating %s with git structure...\n", name)
	skip := append([]string{name}, s.cfg.ScriptFiles...)
	if err := archive.Create(s.cfg.Dir, dest, archive.Options{
		Exclude:   s.cfg.ExcludePatterns,
		SkipNames: skip,
	}); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create archive").Build()
	}

	if info, err := os.Stat(dest); err == nil {
		s.printf("Created %s (%.1f KB)\n", name, float64(info.Size())/1024)
	}

	return s.cleanup(ctx)
}

// verifyBranchesDiffer aborts archiving when any pair of managed branches has
// byte-identical content: packaging indistinguishable variants is a usage
// error, not something to produce silently.
func (s *Switcher) verifyBranchesDiffer() error {
	s.printf("Verifying branch contents differ...\n")

	branches := s.cfg.ManagedBranches()
	for _, branch := range branches {
		if !s.git.BranchExists(branch) {
			return errors.RepoError(fmt.Sprintf("state %q does not exist, run init first", branch)).Build()
		}
	}

	var identical []string
	for i := 0; i < len(branches); i++ {
		for j := i + 1; j < len(branches); j++ {
			equal, err := s.git.HeadTreesEqual(branches[i], branches[j])
			if err != nil {
				return errors.WrapError(err, errors.CategoryGit, "failed to compare branches").Build()
			}
			if equal {
				identical = append(identical, fmt.Sprintf("%s and %s", branches[i], branches[j]))
			}
		}
	}
	if len(identical) > 0 {
		return errors.ValidationError("branches have identical content: " + strings.Join(identical, "; ")).Build()
	}
	return nil
}

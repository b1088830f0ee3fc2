package switcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/logfields"
)

// Initialize creates the repository if needed, makes the initial commit, and
// ensures the baseline and both variant branches exist. Safe to call multiple
// times: existing branches and commits are detected and skipped.
func (s *Switcher) Initialize(ctx context.Context) error {
	if err := s.requireTool(); err != nil {
		return err
	}

	if !s.git.RepositoryExists() {
		s.printf("Initializing git repository...\n")
		if err := s.git.InitRepo(ctx); err != nil {
			return errors.WrapError(err, errors.CategoryGit, "failed to initialize repository").Build()
		}
		// Identity is repository-local so commits work in bare environments.
		// Failure here does not block initialization.
		if err := s.git.SetLocalConfig(ctx, "user.name", identityName); err != nil {
			slog.Warn("Could not set local git user.name", logfields.Error(err))
		}
		if err := s.git.SetLocalConfig(ctx, "user.email", identityEmail); err != nil {
			slog.Warn("Could not set local git user.email", logfields.Error(err))
		}
	}

	if !s.git.HasCommits(ctx) {
		s.printf("Creating initial commit...\n")
		if err := s.writeMarkerFile(); err != nil {
			slog.Warn("Could not create marker file", logfields.Error(err))
		}
		if err := s.ensureIgnoreEntries(); err != nil {
			slog.Warn("Could not update ignore file", logfields.Error(err))
		}
		if err := s.git.StageAll(ctx); err != nil {
			return errors.WrapError(err, errors.CategoryGit, "failed to stage files").Build()
		}
		if err := s.git.Commit(ctx, "Initial commit"); err != nil {
			return errors.WrapError(err, errors.CategoryGit, "failed to create initial commit").Build()
		}
	}

	// Resolve any leftover changes before touching branches.
	if s.git.IsDirty(ctx) {
		current := s.git.CurrentBranch(ctx)
		s.printf("Auto-committing changes on %s before initializing\n", current)
		if err := s.autoCommit(ctx, fmt.Sprintf("Auto-commit on %s during init", current)); err != nil {
			return err
		}
	}

	baseline := s.cfg.Baseline
	if !s.git.BranchExists(baseline) {
		s.printf("Creating %s branch\n", baseline)
		if err := s.git.CreateBranch(ctx, baseline); err != nil {
			return errors.WrapError(err, errors.CategoryGit, fmt.Sprintf("failed to create %s branch", baseline)).Build()
		}
		if s.git.IsDirty(ctx) {
			if err := s.autoCommit(ctx, fmt.Sprintf("Initialize %s state", baseline)); err != nil {
				return err
			}
		}
	} else {
		if err := s.git.Checkout(ctx, baseline); err != nil {
			return errors.WrapError(err, errors.CategoryGit, fmt.Sprintf("failed to switch to %s branch", baseline)).Build()
		}
	}

	// Fork each variant from the baseline, returning to the baseline between
	// creations so both fork points are identical.
	for _, variant := range s.cfg.Variants {
		if s.git.BranchExists(variant) {
			continue
		}
		s.printf("Creating %s branch from %s\n", variant, baseline)
		if err := s.git.CreateBranch(ctx, variant); err != nil {
			return errors.WrapError(err, errors.CategoryGit, fmt.Sprintf("failed to create %s branch", variant)).Build()
		}
		if err := s.git.Checkout(ctx, baseline); err != nil {
			return errors.WrapError(err, errors.CategoryGit, fmt.Sprintf("failed to return to %s branch", baseline)).Build()
		}
	}

	if err := s.git.Checkout(ctx, baseline); err != nil {
		return errors.WrapError(err, errors.CategoryGit, fmt.Sprintf("failed to switch to %s branch", baseline)).Build()
	}

	s.printf("Initialized with states: %s\n", strings.Join(s.cfg.ManagedBranches(), ", "))
	s.printf("Currently on: %s\n", baseline)
	return nil
}

// writeMarkerFile records the generation timestamp before the initial commit.
func (s *Switcher) writeMarkerFile() error {
	content := fmt.Sprintf("# Codebase states\n\nGenerated: %s\n",
		time.Now().Format("2006-01-02 15:04:05"))
	return os.WriteFile(filepath.Join(s.cfg.Dir, s.cfg.MarkerFile), []byte(content), 0o644)
}

// ensureIgnoreEntries appends the switcher's own files to the ignore file so
// editing tools do not see the tool as part of the codebase. Idempotent:
// entries already present are not duplicated and prior content is preserved.
func (s *Switcher) ensureIgnoreEntries() error {
	ignorePath := filepath.Join(s.cfg.Dir, s.cfg.IgnoreFile)
	const header = "# Keep the switcher's own files out of the codebase under edit"

	existing := ""
	if data, err := os.ReadFile(ignorePath); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return err
	}

	lines := strings.Split(strings.TrimSpace(existing), "\n")
	var missing []string
	for _, entry := range s.cfg.ScriptFiles {
		if !slices.Contains(lines, entry) {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var b strings.Builder
	if existing != "" {
		b.WriteString(strings.TrimRight(existing, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(header)
	b.WriteString("\n")
	for _, entry := range missing {
		b.WriteString(entry)
		b.WriteString("\n")
	}
	return os.WriteFile(ignorePath, []byte(b.String()), 0o644)
}

package switcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/switchctl/internal/config"
	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/git"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !git.Available() {
		t.Skip("git not installed")
	}
}

func newTestSwitcher(t *testing.T) (*Switcher, *config.Config) {
	t.Helper()
	requireGit(t)

	cfg := config.Default()
	cfg.Dir = t.TempDir()
	s := New(cfg).
		WithOutput(io.Discard).
		WithConfirmer(ConfirmFunc(func(string) bool { return true }))
	return s, cfg
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func managedBranchCount(s *Switcher) int {
	n := 0
	for _, b := range s.cfg.ManagedBranches() {
		if s.git.BranchExists(b) {
			n++
		}
	}
	return n
}

func TestInitializeCreatesManagedBranches(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)

	require.NoError(t, s.Initialize(ctx))

	require.Equal(t, 3, managedBranchCount(s))
	require.Equal(t, cfg.Baseline, s.git.CurrentBranch(ctx))
	require.FileExists(t, filepath.Join(cfg.Dir, cfg.MarkerFile))
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)

	require.NoError(t, s.Initialize(ctx))
	require.NoError(t, s.Initialize(ctx))

	require.Equal(t, 3, managedBranchCount(s))
	require.Equal(t, cfg.Baseline, s.git.CurrentBranch(ctx))
}

func TestIgnoreEntriesNotDuplicated(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)

	writeFile(t, cfg.Dir, cfg.IgnoreFile, "existing-entry\n")
	require.NoError(t, s.Initialize(ctx))

	// A second pass over an ignore file that already has the entries
	// must leave it unchanged.
	before := readFile(t, cfg.Dir, cfg.IgnoreFile)
	require.NoError(t, s.ensureIgnoreEntries())
	require.Equal(t, before, readFile(t, cfg.Dir, cfg.IgnoreFile))

	require.Contains(t, before, "existing-entry")
	for _, entry := range cfg.ScriptFiles {
		require.Equal(t, 1, strings.Count(before, entry+"\n"), "entry %q", entry)
	}
}

func TestSwitchRejectsUnknownVariant(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)
	require.NoError(t, s.Initialize(ctx))

	err := s.Switch(ctx, "gamma")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryState))
	require.Equal(t, cfg.Baseline, s.git.CurrentBranch(ctx), "current branch unchanged")
}

func TestSwitchWithoutRepository(t *testing.T) {
	requireGit(t)
	cfg := config.Default()
	cfg.Dir = t.TempDir()
	s := New(cfg).WithOutput(io.Discard)

	err := s.Switch(context.Background(), cfg.Variants[0])
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryRepo))
}

func TestSwitchDiscardsDirtyBaselineAtFirstFanOut(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)
	require.NoError(t, s.Initialize(ctx))

	pristine := readFile(t, cfg.Dir, cfg.MarkerFile)
	writeFile(t, cfg.Dir, cfg.MarkerFile, "scribbled over\n")
	writeFile(t, cfg.Dir, "junk.txt", "junk\n")

	require.NoError(t, s.Switch(ctx, cfg.Variants[0]))

	require.Equal(t, cfg.Variants[0], s.git.CurrentBranch(ctx))
	require.Equal(t, pristine, readFile(t, cfg.Dir, cfg.MarkerFile), "baseline modifications discarded")
	_, err := os.Stat(filepath.Join(cfg.Dir, "junk.txt"))
	require.True(t, os.IsNotExist(err), "untracked files removed")
}

// Full fan-out scenario: an edit made on the first variant is committed there
// when leaving dirty, invisible on the second variant, and back when returning.
func TestSwitchPreservesEditsBetweenVariants(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)
	require.NoError(t, s.Initialize(ctx))

	a, b := cfg.Variants[0], cfg.Variants[1]

	require.NoError(t, s.Switch(ctx, a))
	writeFile(t, cfg.Dir, "edit.txt", "change on first variant\n")

	require.NoError(t, s.Switch(ctx, b))
	_, err := os.Stat(filepath.Join(cfg.Dir, "edit.txt"))
	require.True(t, os.IsNotExist(err), "second variant does not see the edit")

	require.NoError(t, s.Switch(ctx, a))
	require.Equal(t, "change on first variant\n", readFile(t, cfg.Dir, "edit.txt"))

	log, err := s.git.RecentLog(ctx, 3)
	require.NoError(t, err)
	require.Contains(t, log, "Auto-commit from "+a)
}

func TestArchiveRejectsIdenticalBranches(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)
	require.NoError(t, s.Initialize(ctx))

	// Right after initialization all three branches share one tree.
	err := s.Archive(ctx)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))

	zips, globErr := filepath.Glob(filepath.Join(cfg.Dir, "*.zip"))
	require.NoError(t, globErr)
	require.Empty(t, zips, "no archive file produced")

	require.Equal(t, 3, managedBranchCount(s), "branches untouched by the abort")
}

func TestArchiveSucceedsAndCleansUp(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)
	require.NoError(t, s.Initialize(ctx))

	a, b := cfg.Variants[0], cfg.Variants[1]

	require.NoError(t, s.Switch(ctx, a))
	writeFile(t, cfg.Dir, "first.txt", "first\n")
	require.NoError(t, s.Switch(ctx, b)) // commits first.txt on a
	writeFile(t, cfg.Dir, "second.txt", "second\n")

	// The dirty tree on b is auto-committed by Archive itself.
	require.NoError(t, s.Archive(ctx))

	zips, err := filepath.Glob(filepath.Join(cfg.Dir, "*.zip"))
	require.NoError(t, err)
	require.Len(t, zips, 1)
	require.Contains(t, filepath.Base(zips[0]), "codebase_"+filepath.Base(cfg.Dir))

	require.Equal(t, 0, managedBranchCount(s), "managed branches removed")
	require.False(t, cfg.IsManaged(s.git.CurrentBranch(ctx)), "landed on a trunk branch")

	// The marker file is tracked on the trunk and survives cleanup.
	require.FileExists(t, filepath.Join(cfg.Dir, cfg.MarkerFile))
}

func TestResetDeclinedHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)
	require.NoError(t, s.Initialize(ctx))
	s.WithConfirmer(ConfirmFunc(func(string) bool { return false }))

	writeFile(t, cfg.Dir, "untracked.txt", "keep me\n")

	err := s.Reset(ctx)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryUser))

	require.Equal(t, 3, managedBranchCount(s))
	require.FileExists(t, filepath.Join(cfg.Dir, "untracked.txt"))
}

func TestResetConfirmedRemovesBranches(t *testing.T) {
	ctx := context.Background()
	s, cfg := newTestSwitcher(t)
	require.NoError(t, s.Initialize(ctx))

	writeFile(t, cfg.Dir, "untracked.txt", "gone\n")

	require.NoError(t, s.Reset(ctx))

	require.Equal(t, 0, managedBranchCount(s))
	require.False(t, cfg.IsManaged(s.git.CurrentBranch(ctx)))
	_, err := os.Stat(filepath.Join(cfg.Dir, "untracked.txt"))
	require.True(t, os.IsNotExist(err))

	// Tracked files survive: only branch references were removed.
	require.FileExists(t, filepath.Join(cfg.Dir, cfg.MarkerFile))
}

func TestStatusReportsBranchAndCommits(t *testing.T) {
	ctx := context.Background()
	requireGit(t)

	cfg := config.Default()
	cfg.Dir = t.TempDir()
	var out strings.Builder
	s := New(cfg).WithOutput(&out)

	require.NoError(t, s.Initialize(ctx))
	out.Reset()

	require.NoError(t, s.Status(ctx))
	require.Contains(t, out.String(), "Current state: "+cfg.Baseline)
	require.Contains(t, out.String(), "Initial commit")
}

func TestStatusWithoutRepository(t *testing.T) {
	requireGit(t)
	cfg := config.Default()
	cfg.Dir = t.TempDir()
	s := New(cfg).WithOutput(io.Discard)

	err := s.Status(context.Background())
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryRepo))
}

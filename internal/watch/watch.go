// Package watch provides a checkpoint safety net for long editing sessions:
// it watches the working tree and auto-commits on the current variant branch
// after a quiet period, so work between manual switches is never lost.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/switchctl/internal/archive"
	"git.home.luguber.info/inful/switchctl/internal/config"
	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/git"
	"git.home.luguber.info/inful/switchctl/internal/logfields"
)

// DefaultDebounce is the quiet period after the last filesystem event before
// a checkpoint commit is attempted.
const DefaultDebounce = 2 * time.Second

// Watcher auto-commits checkpoints while the user edits on a variant branch.
type Watcher struct {
	cfg      *config.Config
	git      *git.Client
	debounce time.Duration
}

// New creates a watcher for the configured working directory.
func New(cfg *config.Config, client *git.Client) *Watcher {
	return &Watcher{cfg: cfg, git: client, debounce: DefaultDebounce}
}

// WithDebounce overrides the quiet period (fluent helper).
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run watches until the context is cancelled. Checkpoints are only made on an
// edit-variant branch: the baseline must stay pristine and unmanaged branches
// are none of this tool's business.
func (w *Watcher) Run(ctx context.Context) error {
	if !git.Available() {
		return errors.ToolError("git not found in PATH").Build()
	}
	if !w.git.RepositoryExists() {
		return errors.RepoError("not a git repository, run init first").Build()
	}
	branch := w.git.CurrentBranch(ctx)
	if !w.cfg.IsVariant(branch) {
		return errors.StateError(fmt.Sprintf("watch runs only on an edit variant, currently on %q", branch)).
			WithContext("branch", branch).
			Build()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to create filesystem watcher").Build()
	}
	defer fw.Close()

	matcher := archive.NewMatcher(w.cfg.ExcludePatterns)
	if err := w.addTree(fw, matcher, w.cfg.Dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch working directory").Build()
	}

	slog.Info("Watching for changes", logfields.Branch(branch), logfields.Path(w.cfg.Dir))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			rel, relErr := filepath.Rel(w.cfg.Dir, event.Name)
			if relErr != nil || w.ignored(matcher, rel) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := w.addTree(fw, matcher, event.Name); addErr != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(rel), logfields.Error(addErr))
					}
				}
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(watchErr))

		case <-timer.C:
			if err := w.checkpoint(ctx, branch); err != nil {
				return err
			}
		}
	}
}

// checkpoint commits the dirty tree on the current branch.
func (w *Watcher) checkpoint(ctx context.Context, branch string) error {
	if !w.git.IsDirty(ctx) {
		return nil
	}
	if err := w.git.StageAll(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryGit, "failed to stage checkpoint").Build()
	}
	if err := w.git.Commit(ctx, fmt.Sprintf("Checkpoint on %s", branch)); err != nil {
		return errors.WrapError(err, errors.CategoryGit, "failed to commit checkpoint").Build()
	}
	slog.Info("Checkpoint committed", logfields.Branch(branch))
	return nil
}

// addTree registers root and all its subdirectories, skipping git metadata
// and excluded paths.
func (w *Watcher) addTree(fw *fsnotify.Watcher, matcher *archive.Matcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || !d.IsDir() {
			return walkErr
		}
		rel, relErr := filepath.Rel(w.cfg.Dir, p)
		if relErr != nil {
			return relErr
		}
		if rel != "." && w.ignored(matcher, rel) {
			return fs.SkipDir
		}
		return fw.Add(p)
	})
}

func (w *Watcher) ignored(matcher *archive.Matcher, rel string) bool {
	if rel == ".git" || strings.HasPrefix(rel, ".git"+string(filepath.Separator)) {
		return true
	}
	return matcher.Excluded(rel)
}

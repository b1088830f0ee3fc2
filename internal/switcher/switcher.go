// Package switcher drives the git client through the managed-branch
// lifecycle: creation, transition, inspection, archiving, and teardown.
// Every transition that encounters a dirty working tree resolves it (commit
// or discard) before changing branches.
package switcher

import (
	"context"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/switchctl/internal/config"
	"git.home.luguber.info/inful/switchctl/internal/foundation/errors"
	"git.home.luguber.info/inful/switchctl/internal/git"
)

const (
	identityName  = "switchctl"
	identityEmail = "switchctl@localhost"
)

// Switcher holds the configuration and collaborators for one invocation.
// All repository state lives in git itself; the switcher keeps nothing
// between invocations.
type Switcher struct {
	cfg     *config.Config
	git     *git.Client
	confirm Confirmer
	out     io.Writer
}

// New creates a switcher for the configured working directory.
func New(cfg *config.Config) *Switcher {
	return &Switcher{
		cfg:     cfg,
		git:     git.NewClient(cfg.Dir),
		confirm: NewStdioConfirmer(os.Stdin, os.Stdout),
		out:     os.Stdout,
	}
}

// WithConfirmer replaces the confirmation provider (fluent helper).
func (s *Switcher) WithConfirmer(c Confirmer) *Switcher { s.confirm = c; return s }

// WithOutput redirects user-facing messages (fluent helper).
func (s *Switcher) WithOutput(w io.Writer) *Switcher { s.out = w; return s }

func (s *Switcher) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// requireTool verifies the git client is reachable on the execution path.
func (s *Switcher) requireTool() error {
	if !git.Available() {
		return errors.ToolError("git not found in PATH").Build()
	}
	return nil
}

// requireRepo verifies an initialized repository exists at the working directory.
func (s *Switcher) requireRepo() error {
	if !s.git.RepositoryExists() {
		return errors.RepoError("not a git repository, run init first").
			WithContext("dir", s.cfg.Dir).
			Build()
	}
	return nil
}

// autoCommit stages everything and commits with the given message.
func (s *Switcher) autoCommit(ctx context.Context, message string) error {
	if err := s.git.StageAll(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryGit, "failed to stage changes").Build()
	}
	if err := s.git.Commit(ctx, message); err != nil {
		return errors.WrapError(err, errors.CategoryGit, "failed to commit changes").Build()
	}
	return nil
}

package git

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/switchctl/internal/logfields"
)

// Client provides the porcelain operations the switcher needs, all relative
// to a single repository directory.
type Client struct {
	dir    string
	runner *Runner
}

// NewClient creates a client for the repository at dir.
func NewClient(dir string) *Client {
	return &Client{dir: dir, runner: NewRunner(dir)}
}

// Dir returns the repository directory.
func (c *Client) Dir() string { return c.dir }

// InitRepo initializes a new repository at the client directory.
func (c *Client) InitRepo(ctx context.Context) error {
	return c.runner.Run(ctx, "init")
}

// SetLocalConfig sets a repository-local configuration value.
func (c *Client) SetLocalConfig(ctx context.Context, key, value string) error {
	return c.runner.Run(ctx, "config", "--local", key, value)
}

// CurrentBranch returns the currently checked-out branch, falling back to
// "main" when git reports nothing (detached head or command failure).
func (c *Client) CurrentBranch(ctx context.Context) string {
	out, err := c.runner.Output(ctx, "branch", "--show-current")
	if err != nil || out == "" {
		return "main"
	}
	return out
}

// HasCommits reports whether the repository has at least one commit.
func (c *Client) HasCommits(ctx context.Context) bool {
	out, err := c.runner.Output(ctx, "log", "--oneline", "-1")
	return err == nil && out != ""
}

// StatusPorcelain returns the machine-readable status of the working tree.
// An empty result means the tree is clean.
func (c *Client) StatusPorcelain(ctx context.Context) (string, error) {
	return c.runner.Output(ctx, "status", "--porcelain")
}

// IsDirty reports whether the working tree has uncommitted modifications or
// untracked files. Errors are treated as clean: every caller has already
// verified the repository exists.
func (c *Client) IsDirty(ctx context.Context) bool {
	out, err := c.StatusPorcelain(ctx)
	if err != nil {
		slog.Debug("status query failed, assuming clean tree", logfields.Error(err))
		return false
	}
	return out != ""
}

// ShortStatus returns the human-readable short status of the working tree.
func (c *Client) ShortStatus(ctx context.Context) (string, error) {
	return c.runner.Output(ctx, "status", "--short")
}

// RecentLog returns the n most recent commit summaries, one per line.
func (c *Client) RecentLog(ctx context.Context, n int) (string, error) {
	return c.runner.Output(ctx, "log", "--oneline", fmt.Sprintf("-%d", n))
}

// StageAll stages every modification and untracked file.
func (c *Client) StageAll(ctx context.Context) error {
	return c.runner.Run(ctx, "add", ".")
}

// Commit records the staged changes with the given message.
func (c *Client) Commit(ctx context.Context, message string) error {
	return c.runner.Run(ctx, "commit", "-m", message)
}

// Checkout switches the working tree to an existing branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	return c.runner.Run(ctx, "checkout", branch)
}

// CreateBranch creates a branch at the current position and checks it out.
func (c *Client) CreateBranch(ctx context.Context, branch string) error {
	return c.runner.Run(ctx, "checkout", "-b", branch)
}

// DeleteBranchForce removes a branch regardless of its merge state.
func (c *Client) DeleteBranchForce(ctx context.Context, branch string) error {
	return c.runner.Run(ctx, "branch", "-D", branch)
}

// HardReset discards all modifications to tracked files.
func (c *Client) HardReset(ctx context.Context) error {
	return c.runner.Run(ctx, "reset", "--hard")
}

// CleanUntracked removes untracked files and directories.
func (c *Client) CleanUntracked(ctx context.Context) error {
	return c.runner.Run(ctx, "clean", "-fd")
}

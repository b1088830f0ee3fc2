package git

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

const binary = "git"

// Available reports whether the git client is reachable on the execution
// path. Its absence is a reported, non-fatal condition for every operation.
func Available() bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Runner executes git subprocesses in a fixed working directory. Each call
// blocks until the subprocess exits and inspects its status before returning.
type Runner struct {
	dir string
}

// NewRunner creates a runner bound to the given directory.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// Run executes git with the given arguments and reports only success or
// failure. Stdout is discarded; stderr is captured into the returned error.
func (r *Runner) Run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.dir
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return newCommandError(args, stderr.String(), err)
	}
	return nil
}

// Output executes git with the given arguments and returns trimmed stdout.
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", newCommandError(args, stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

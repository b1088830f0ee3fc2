package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandError is a typed subprocess failure enabling structured handling
// upstream without string parsing.
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", msg, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

func newCommandError(args []string, stderr string, err error) *CommandError {
	ce := &CommandError{Args: args, Stderr: stderr, ExitCode: -1, Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ce.ExitCode = exitErr.ExitCode()
	}
	return ce
}

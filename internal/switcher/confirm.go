package switcher

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers yes/no prompts. Injected so tests can simulate both
// affirmative and declined responses deterministically.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NewStdioConfirmer returns a confirmer that prompts on out and reads a
// single line from in. Only an explicit "y" confirms.
func NewStdioConfirmer(in io.Reader, out io.Writer) Confirmer {
	return &stdioConfirmer{in: bufio.NewReader(in), out: out}
}

type stdioConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (c *stdioConfirmer) Confirm(prompt string) bool {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

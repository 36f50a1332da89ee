// Package confirm asks the user before anything is deleted.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Prompt reads the answer from In. Anything other than "y" or "yes" is a no,
// including end of input.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (p Prompt) Confirm(prompt string) bool {
	fmt.Fprintf(p.Out, "%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(p.In)
	if !scanner.Scan() {
		fmt.Fprintln(p.Out)
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}

// NewPrompt returns a Prompt on stdin, or a Confirmer that refuses when stdin
// is not a terminal.
func NewPrompt(out io.Writer) Confirmer {
	if !isTerminal(os.Stdin) {
		return refuse{out: out}
	}
	return Prompt{In: os.Stdin, Out: out}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type refuse struct {
	out io.Writer
}

func (r refuse) Confirm(prompt string) bool {
	fmt.Fprintf(r.out, "%s\nstdin is not a terminal; pass --yes to proceed without a prompt\n", prompt)
	return false
}

// Always answers every question with answer.
type Always bool

// Confirm implements Confirmer.
func (a Always) Confirm(string) bool {
	return bool(a)
}

package display

import (
	"fmt"
	"io"
)

// ProgressIndicator prints numbered phase lines for a multi-step command
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
	plain   bool
}

// NewProgressIndicator creates a new progress indicator for total phases
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:  w,
		total:   total,
		current: 0,
	}
}

// Plain disables ANSI colors, for output that is not a terminal
func (p *ProgressIndicator) Plain() *ProgressIndicator {
	p.plain = true
	return p
}

// Start displays the header message
func (p *ProgressIndicator) Start(title string) {
	fmt.Fprintf(p.writer, "%s:\n", title)
}

// Step displays the next phase: [N/Total] label (cyan)
func (p *ProgressIndicator) Step(label string) {
	p.current++
	if p.plain {
		fmt.Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.total, label)
		return
	}
	fmt.Fprintf(p.writer, "\x1b[36m  [%d/%d] %s\x1b[0m\n", p.current, p.total, label)
}

// Complete displays the final message with a green checkmark
func (p *ProgressIndicator) Complete(message string) {
	if p.plain {
		fmt.Fprintf(p.writer, "✓ %s\n", message)
		return
	}
	fmt.Fprintf(p.writer, "\x1b[32m✓\x1b[0m %s\n", message)
}

// Fail displays the final message with a red cross
func (p *ProgressIndicator) Fail(message string) {
	if p.plain {
		fmt.Fprintf(p.writer, "✗ %s\n", message)
		return
	}
	fmt.Fprintf(p.writer, "\x1b[31m✗\x1b[0m %s\n", message)
}

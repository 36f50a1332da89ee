package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for summary output.
// Green: removed / found
// Red: failures
// Yellow: dry runs, aborts and skips
// Cyan: labels
// A nil scheme renders plain text.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	header  *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		header:  color.New(color.Bold),
	}
}

func paint(c *color.Color, text string) string {
	if c == nil {
		return text
	}
	return c.Sprint(text)
}

func (s *colorScheme) title(text string) string {
	if s == nil {
		return text
	}
	return paint(s.header, text)
}

func (s *colorScheme) good(text string) string {
	if s == nil {
		return text
	}
	return paint(s.success, text)
}

func (s *colorScheme) bad(text string) string {
	if s == nil {
		return text
	}
	return paint(s.fail, text)
}

func (s *colorScheme) caution(text string) string {
	if s == nil {
		return text
	}
	return paint(s.warn, text)
}

// metric formats "label: value" with a colored label.
func (s *colorScheme) metric(label string, value interface{}) string {
	if s == nil {
		return fmt.Sprintf("%s: %v", label, value)
	}
	return fmt.Sprintf("%s: %v", s.label.Sprint(label), value)
}

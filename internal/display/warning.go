package display

import (
	"fmt"
	"io"
	"strings"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
	Plain      bool     // Disable ANSI colors
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	if !w.Plain {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		if len(w.Paths) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, path := range w.Paths {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, path))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !w.Plain {
		b.WriteString("\x1b[0m")
	}

	fmt.Fprint(out, b.String())
}

// WarnPatternLocation creates a warning for pattern location problems that
// were recovered from by falling back to the search paths
func WarnPatternLocation(messages []string) Warning {
	return Warning{
		Title:      "Custom pattern location ignored",
		Message:    strings.Join(messages, "; "),
		Suggestion: "Fix --patterns or custom_pattern_location, or run 'nmcleaner patterns init'",
	}
}

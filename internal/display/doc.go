// Package display renders the user-facing parts of a run that are not log
// lines: the phase indicator printed while a scan progresses and boxed
// warnings about configuration problems.
//
// # Progress Indicators
//
// Use ProgressIndicator for the phases of a command:
//
//	progress := display.NewProgressIndicator(os.Stderr, 3)
//	progress.Start("Scanning /")
//	progress.Step("Walking filesystem")
//	progress.Step("Matching patterns")
//	progress.Step("Measuring sizes")
//	progress.Complete("Found 120 removable files")
//
// # Warning Messages
//
//	warning := display.Warning{
//	    Title:      "Custom pattern location ignored",
//	    Message:    "Falling back to the default search paths",
//	    Paths:      []string{"/home/me/patterns.json"},
//	    Suggestion: "Fix --patterns or remove custom_pattern_location",
//	}
//	warning.Display(os.Stderr)
//
// Output is colored with ANSI escape codes unless Plain is set. Every
// function takes an io.Writer.
package display

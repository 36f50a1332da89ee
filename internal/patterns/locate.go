package patterns

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
)

// Locator finds the pattern file to use for a run.
type Locator struct {
	// SearchPaths are tried in order when no custom location is usable
	SearchPaths []string
}

// Location is the outcome of a lookup. An empty Path means the embedded
// defaults should be used.
type Location struct {
	Path     string
	Warnings []string
}

// Source returns a FileSource for the location.
func (l Location) Source() FileSource {
	return FileSource{Path: l.Path}
}

// Locate resolves custom (with "~" expansion) when set. A custom location that
// is missing or not a regular file produces a warning and falls back to the
// search paths; one that exists but cannot be opened is an error.
func (l Locator) Locate(custom string) (Location, error) {
	var loc Location

	if custom != "" {
		path, err := homedir.Expand(custom)
		if err != nil {
			return loc, fmt.Errorf("expand custom pattern location %q: %w", custom, err)
		}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			loc.Warnings = append(loc.Warnings, fmt.Sprintf("Custom pattern location does not exist: %q", path))
		case !info.Mode().IsRegular():
			loc.Warnings = append(loc.Warnings, fmt.Sprintf("Custom pattern location is not a file: %q", path))
		default:
			f, err := os.Open(path)
			if err != nil {
				return loc, fmt.Errorf("cannot read custom pattern location %s: %w", path, err)
			}
			f.Close()
			loc.Path = path
			return loc, nil
		}
	}

	for _, candidate := range l.SearchPaths {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			loc.Path = candidate
			return loc, nil
		}
	}

	return loc, nil
}

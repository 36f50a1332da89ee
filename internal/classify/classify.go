// Package classify holds the pure path predicates the tree walker uses to prune
// its traversal. Nothing in this package keeps state between calls, so a single
// Classifier value can be shared by any number of goroutines.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/scylladb/go-set/strset"
)

// SystemPrefixes are pseudo-filesystems and OS mount points that are never
// worth searching. They are pruned even in full-scan mode.
var SystemPrefixes = []string{"/proc", "/sys", "/dev", "/run", "/efi", "/usr"}

// DefaultExcludedNames are path components skipped unless full scan is enabled.
var DefaultExcludedNames = []string{"Projects", "opt", ".vscode"}

// Classifier decides which paths the walker prunes.
type Classifier struct {
	// FullScan disables the ExcludedNames tier. SystemPrefixes always apply.
	FullScan bool
	// ExcludedNames are exact path components that prune a branch
	ExcludedNames []string
	// SystemPrefixes overrides the package default when non-nil
	SystemPrefixes []string
}

// New returns a Classifier with the default exclusion tiers.
func New(fullScan bool) Classifier {
	return Classifier{
		FullScan:      fullScan,
		ExcludedNames: DefaultExcludedNames,
	}
}

// IsIgnored reports whether path is administratively excluded from the walk.
func (c Classifier) IsIgnored(path string) bool {
	p := filepath.ToSlash(path)

	prefixes := c.SystemPrefixes
	if prefixes == nil {
		prefixes = SystemPrefixes
	}
	for _, prefix := range prefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}

	if c.FullScan || len(c.ExcludedNames) == 0 {
		return false
	}

	for _, component := range strings.Split(p, "/") {
		if component == "" {
			continue
		}
		for _, name := range c.ExcludedNames {
			if component == name {
				return true
			}
		}
	}
	return false
}

// IsInsideKnown reports whether any proper ancestor of path is in known.
// The path itself is not checked, so a registered node_modules directory is
// not considered to be inside itself.
func IsInsideKnown(path string, known *strset.Set) bool {
	current := filepath.Clean(path)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return false
		}
		if known.Has(parent) {
			return true
		}
		current = parent
	}
}

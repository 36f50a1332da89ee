package logger

import (
	"fmt"
	"sort"

	"github.com/docker/go-units"
	"github.com/harrison/node-module-cleaner/internal/models"
)

// SampleSize is how many node_modules directories a walk summary lists.
const SampleSize = 10

func walkSummaryLines(s models.WalkSummary, c *colorScheme) []string {
	lines := []string{
		c.title("=== Walk Summary ==="),
		c.metric("Root", fmt.Sprintf("%s (workers: %d)", s.Root, s.Workers)),
		c.metric("Elapsed", formatDuration(s.Elapsed)),
		c.metric("Directories scanned", s.Stats.Dirs),
		c.metric("Files scanned", s.Stats.Files),
		c.metric("Entries ignored", s.Stats.Ignored),
		c.metric("node_modules found", c.good(fmt.Sprint(s.Stats.NodeModules))),
		c.metric("Throughput", fmt.Sprintf("%.0f entries/s, %.1f node_modules/s",
			s.EntriesPerSecond(), s.NodeModulesPerSecond())),
	}

	if len(s.Locations) == 0 {
		return append(lines, "No node_modules directories found")
	}

	shown := len(s.Locations)
	if shown > SampleSize {
		shown = SampleSize
	}
	lines = append(lines, fmt.Sprintf("Showing first %d of %d locations:", shown, len(s.Locations)))
	for i, loc := range s.Locations[:shown] {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, loc))
	}
	if rest := len(s.Locations) - shown; rest > 0 {
		lines = append(lines, fmt.Sprintf("  ... and %d more", rest))
	}
	return lines
}

func matchSummaryLines(s models.MatchSummary, c *colorScheme) []string {
	lines := []string{
		c.title("=== Match Summary ==="),
		c.metric("Locations searched", s.Locations),
		c.metric("Matched files", c.good(fmt.Sprint(s.Files))),
		c.metric("Matched directories", c.good(fmt.Sprint(s.Dirs))),
		c.metric("Elapsed", formatDuration(s.Elapsed)),
	}
	if s.Files == 0 && s.Dirs == 0 {
		lines = append(lines, "Nothing matched the safe rule group")
	}
	return lines
}

// hitLines renders the per-pattern hit table sorted by pattern.
func hitLines(hits map[string]int) []string {
	if len(hits) == 0 {
		return nil
	}

	keys := make([]string, 0, len(hits))
	for k := range hits {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{"Pattern hits:"}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %-20s %d", k, hits[k]))
	}
	return lines
}

func removalSummaryLines(r models.RemovalResult, c *colorScheme) []string {
	lines := []string{
		c.title("=== Removal Summary ==="),
		c.metric("Targets", fmt.Sprintf("%d files, %d directories (%s)",
			r.TargetFiles, r.TargetDirs, units.BytesSize(float64(r.TargetBytes)))),
	}

	switch {
	case r.DryRun:
		return append(lines, c.caution("Dry run: nothing was removed"))
	case r.Aborted:
		return append(lines, c.caution("Aborted: nothing was removed"))
	}

	lines = append(lines, c.metric("Removed", c.good(fmt.Sprintf("%d files, %d directories", r.RemovedFiles, r.RemovedDirs))))
	if r.Skipped > 0 {
		lines = append(lines, c.metric("Skipped", c.caution(fmt.Sprint(r.Skipped))))
	}
	if r.Failed > 0 {
		lines = append(lines, c.metric("Failed", c.bad(fmt.Sprint(r.Failed))))
	} else {
		lines = append(lines, c.metric("Failed", 0))
	}
	return append(lines, c.metric("Duration", formatDuration(r.Duration)))
}

package models

import "time"

// WalkStats holds the aggregate counters of one tree walk
type WalkStats struct {
	Files       int64 // Non-directory entries scanned
	Dirs        int64 // Directories scanned (node_modules included)
	NodeModules int64 // node_modules directories found
	Ignored     int64 // Entries pruned by the path classifier
}

// Entries returns the number of scanned entries (files plus directories)
func (s WalkStats) Entries() int64 {
	return s.Files + s.Dirs
}

// WalkSummary describes a finished walk for reporting
type WalkSummary struct {
	Root      string        // Root path the walk started from
	Workers   int           // Size of the worker pool
	Stats     WalkStats     // Aggregate counters
	Elapsed   time.Duration // Wall time of the walk
	Locations []string      // node_modules directories found
}

// EntriesPerSecond returns the scan throughput, guarding against a zero elapsed time
func (s WalkSummary) EntriesPerSecond() float64 {
	return perSecond(s.Stats.Entries(), s.Elapsed)
}

// NodeModulesPerSecond returns the node_modules discovery rate
func (s WalkSummary) NodeModulesPerSecond() float64 {
	return perSecond(s.Stats.NodeModules, s.Elapsed)
}

func perSecond(n int64, d time.Duration) float64 {
	if secs := d.Seconds(); secs > 0 {
		return float64(n) / secs
	}
	return float64(n)
}

// MatchSummary describes a finished pattern matching pass
type MatchSummary struct {
	Locations int            // Number of node_modules directories matched against
	Files     int            // Matched regular files
	Dirs      int            // Matched directories
	Hits      map[string]int // Per-pattern hit counts
	Elapsed   time.Duration  // Wall time of the pass
}

// RemovalResult represents the outcome of a removal pass
type RemovalResult struct {
	TargetFiles  int           // Files handed to the remover
	TargetDirs   int           // Directories handed to the remover
	TargetBytes  uint64        // Total size of all targets before removal
	RemovedFiles int           // Files actually removed
	RemovedDirs  int           // Directories actually removed
	Skipped      int           // Targets whose type changed or that vanished
	Failed       int           // Targets that could not be removed
	DryRun       bool          // Nothing was removed because dry-run was on
	Aborted      bool          // The user declined the confirmation prompt
	Duration     time.Duration // Time taken by the removal pass
}

// Removed returns the total number of removed targets
func (r RemovalResult) Removed() int {
	return r.RemovedFiles + r.RemovedDirs
}

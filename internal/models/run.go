package models

import "time"

// Run modes recorded in history
const (
	ModeScan  = "scan"  // Report only
	ModeClean = "clean" // Removal was requested
)

// RunRecord is one persisted invocation of scan or clean
type RunRecord struct {
	ID           string
	Mode         string
	Root         string
	FullScan     bool
	StartedAt    time.Time
	Duration     time.Duration
	Stats        WalkStats
	MatchedFiles int
	MatchedDirs  int
	MatchedBytes uint64
	Removed      int
	DryRun       bool
	Aborted      bool
}

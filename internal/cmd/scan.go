package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/node-module-cleaner/internal/config"
	"github.com/harrison/node-module-cleaner/internal/history"
	"github.com/harrison/node-module-cleaner/internal/matcher"
	"github.com/harrison/node-module-cleaner/internal/models"
	"github.com/harrison/node-module-cleaner/internal/sizes"
	"github.com/harrison/node-module-cleaner/internal/walker"
	"github.com/spf13/cobra"
)

// scanOutcome is what the walk and match phases produced
type scanOutcome struct {
	walk  *walker.Result
	match *matcher.Result
	bytes uint64
}

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Report removable files inside node_modules directories",
		Long: `Walk root (default "/", or the config's root) looking for node_modules
directories and report the files inside them that match the "safe" rule group.
Nothing is removed.

Examples:
  nmcleaner scan ~/src
  nmcleaner scan --list ~/src        # Print every matched path
  nmcleaner scan --full /            # Include Projects, opt and .vscode`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().Bool("list", false, "Print matched paths to stdout")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	if err := s.openRunLog(); err != nil {
		s.log.LogWarn(fmt.Sprintf("Run log disabled: %v", err))
	}
	defer s.close()

	start := time.Now()
	outcome, err := s.scan(true)
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, f := range outcome.match.MatchedFiles() {
			fmt.Fprintln(s.out, f)
		}
		for _, d := range outcome.match.MatchedDirectories() {
			fmt.Fprintln(s.out, d)
		}
	}

	s.record(models.RunRecord{
		Mode:         models.ModeScan,
		Root:         s.cfg.Root,
		FullScan:     s.cfg.FullScan,
		StartedAt:    start,
		Duration:     time.Since(start),
		Stats:        outcome.walk.Stats,
		MatchedFiles: outcome.match.Files.Size(),
		MatchedDirs:  outcome.match.Dirs.Size(),
		MatchedBytes: outcome.bytes,
	})
	return nil
}

// scan walks the root and matches the node_modules directories found. A
// pattern configuration error aborts after the walk summary is logged, so the
// caller can tell it apart from an empty result.
func (s *session) scan(measure bool) (*scanOutcome, error) {
	phases := 2
	if measure {
		phases = 3
	}
	progress := s.progress(phases)
	progress.Start(fmt.Sprintf("Scanning %s", s.cfg.Root))

	source, err := s.patternSource()
	if err != nil {
		progress.Fail(err.Error())
		return nil, err
	}

	progress.Step("Walking filesystem")
	w := walker.New(s.fs, walker.Options{
		Workers:    s.cfg.Workers,
		BatchSize:  s.cfg.BatchSize,
		Classifier: s.cfg.Classifier(),
	}, s.log)
	walked := w.Walk(s.cfg.Root)
	s.log.LogWalkSummary(walked.Summary())

	progress.Step("Matching patterns")
	matched, err := matcher.MatchPatterns(s.fs, source, walked.Locations, s.log)
	if err != nil {
		err = fmt.Errorf("pattern configuration: %w", err)
		s.log.LogError(err.Error())
		progress.Fail("Pattern configuration is invalid")
		return nil, err
	}
	s.log.LogMatchSummary(matched.Summary())

	outcome := &scanOutcome{walk: walked, match: matched}
	if measure {
		progress.Step("Measuring sizes")
		targets := append(matched.MatchedFiles(), matched.MatchedDirectories()...)
		total, err := sizes.Total(s.fs, targets)
		if err != nil {
			s.log.LogDebug(fmt.Sprintf("Some sizes could not be read: %v", err))
		}
		outcome.bytes = total
		s.log.LogInfo(fmt.Sprintf("Removable: %s", sizes.Human(total)))
	}

	progress.Complete(fmt.Sprintf("%d removable files and %d directories in %d node_modules",
		matched.Files.Size(), matched.Dirs.Size(), len(walked.Locations)))
	return outcome, nil
}

// record stores the run in the history database. Failures are logged only.
func (s *session) record(run models.RunRecord) {
	if !s.cfg.HistoryEnabled {
		return
	}

	store, err := history.NewStore(config.HistoryDBPath())
	if err != nil {
		s.log.LogWarn(fmt.Sprintf("History disabled: %v", err))
		return
	}
	defer store.Close()

	if err := store.Record(context.Background(), &run); err != nil {
		s.log.LogWarn(fmt.Sprintf("Failed to record run: %v", err))
		return
	}
	s.log.LogDebug(fmt.Sprintf("Recorded run %s", run.ID))
}

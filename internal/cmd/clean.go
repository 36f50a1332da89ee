package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harrison/node-module-cleaner/internal/config"
	"github.com/harrison/node-module-cleaner/internal/confirm"
	"github.com/harrison/node-module-cleaner/internal/filelock"
	"github.com/harrison/node-module-cleaner/internal/models"
	"github.com/harrison/node-module-cleaner/internal/remover"
	"github.com/spf13/cobra"
)

// NewCleanCommand creates the clean command
func NewCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [root]",
		Short: "Remove matched files inside node_modules directories",
		Long: `Scan root like the scan command, then remove every matched file and
directory after a single confirmation prompt. Every removal is written to the
run log under --log-dir.

Only one clean can run at a time.

Examples:
  nmcleaner clean ~/src
  nmcleaner clean --dry-run ~/src    # Log what would be removed
  nmcleaner clean --yes ~/src        # Skip the prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClean,
	}

	cmd.Flags().BoolP("yes", "y", false, "Remove without asking for confirmation")
	cmd.Flags().Bool("dry-run", false, "Report what would be removed without removing it")

	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	if err := s.openRunLog(); err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer s.close()

	lock, err := filelock.Acquire(config.LockPath())
	if err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return fmt.Errorf("another clean is already running: %w", err)
		}
		return err
	}
	defer lock.Release()

	start := time.Now()
	outcome, err := s.scan(false)
	if err != nil {
		return err
	}

	r := &remover.Remover{
		FS:      s.fs,
		Confirm: s.confirmer(cmd),
		DryRun:  s.cfg.DryRun,
		Log:     s.log,
	}
	result, removeErr := r.Remove(outcome.match.MatchedFiles(), outcome.match.MatchedDirectories())
	s.log.LogRemovalSummary(result)

	s.record(models.RunRecord{
		Mode:         models.ModeClean,
		Root:         s.cfg.Root,
		FullScan:     s.cfg.FullScan,
		StartedAt:    start,
		Duration:     time.Since(start),
		Stats:        outcome.walk.Stats,
		MatchedFiles: outcome.match.Files.Size(),
		MatchedDirs:  outcome.match.Dirs.Size(),
		MatchedBytes: result.TargetBytes,
		Removed:      result.Removed(),
		DryRun:       result.DryRun,
		Aborted:      result.Aborted,
	})

	if removeErr != nil {
		return fmt.Errorf("%d removals failed: %w", result.Failed, removeErr)
	}
	return nil
}

// confirmer picks how to ask before removing. Input supplied through the
// command (tests, pipes set up by the caller) is read directly.
func (s *session) confirmer(cmd *cobra.Command) confirm.Confirmer {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return confirm.Always(true)
	}
	if in := cmd.InOrStdin(); in != os.Stdin {
		return confirm.Prompt{In: in, Out: s.errOut}
	}
	return confirm.NewPrompt(s.errOut)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/node-module-cleaner/internal/config"
	"github.com/harrison/node-module-cleaner/internal/history"
	"github.com/harrison/node-module-cleaner/internal/models"
	"github.com/harrison/node-module-cleaner/internal/sizes"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'nmcleaner history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scan and clean runs",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", history.DefaultLimit, "Maximum number of runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("--limit must be > 0, got %d", limit)
	}

	dbPath := config.HistoryDBPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No runs recorded yet.\n")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(output, "No runs recorded yet.\n")
		return nil
	}

	printRuns(cmd, runs)
	return nil
}

// printRuns writes one line per run, newest first
func printRuns(cmd *cobra.Command, runs []models.RunRecord) {
	output := cmd.OutOrStdout()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(output, "%s\n", bold(fmt.Sprintf("%-19s  %-5s  %8s  %8s  %10s  %s",
		"STARTED", "MODE", "FILES", "REMOVED", "SIZE", "ROOT")))
	for _, run := range runs {
		fmt.Fprintf(output, "%-19s  %-5s  %8d  %8s  %10s  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Mode,
			run.MatchedFiles+run.MatchedDirs,
			removedColumn(run),
			sizes.Human(run.MatchedBytes),
			run.Root,
		)
	}

	last := runs[0]
	fmt.Fprintf(output, "\nLast run took %s and scanned %d entries (%d node_modules).\n",
		last.Duration.Round(time.Millisecond), last.Stats.Entries(), last.Stats.NodeModules)
}

func removedColumn(run models.RunRecord) string {
	switch {
	case run.Mode == models.ModeScan:
		return "-"
	case run.DryRun:
		return "dry-run"
	case run.Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("%d", run.Removed)
	}
}

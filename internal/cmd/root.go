package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for nmcleaner
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nmcleaner",
		Short: "Find and remove unneeded files inside node_modules directories",
		Long: `nmcleaner walks a directory tree in parallel looking for node_modules
directories, then matches the files inside them against the "safe" rule group
of a pattern file (READMEs, tests, docs, type declarations and similar).

scan reports what matched and how much space it takes. clean removes it
after asking for confirmation.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: ./nmcleaner.yaml, then the user and system config dirs)")
	flags.Bool("full", false, "Scan excluded directories too (Projects, opt, .vscode)")
	flags.Int("workers", 0, "Number of walker goroutines (0 = available parallelism)")
	flags.Int("batch-size", 0, "Hits a walker goroutine buffers before publishing them")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-dir", "", "Directory for run log files")
	flags.String("patterns", "", "Path to a pattern file")
	flags.BoolP("verbose", "v", false, "Shorthand for --log-level debug")

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewCleanCommand())
	cmd.AddCommand(NewPatternsCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harrison/node-module-cleaner/internal/config"
	"github.com/harrison/node-module-cleaner/internal/filelock"
	"github.com/harrison/node-module-cleaner/internal/matcher"
	"github.com/harrison/node-module-cleaner/internal/patterns"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewPatternsCommand creates the 'nmcleaner patterns' command group
func NewPatternsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect and manage the pattern file",
		Long: `Pattern files hold named rule groups. The "safe" group decides what scan
and clean consider removable. A file is looked up in this order:
  1. --patterns or custom_pattern_location
  2. ./patterns.json
  3. $XDG_CONFIG_HOME/node-module-cleaner/patterns.json
  4. /etc/node-module-cleaner/patterns.json
  5. the built-in defaults`,
	}

	cmd.AddCommand(newPatternsShowCommand())
	cmd.AddCommand(newPatternsTestCommand())
	cmd.AddCommand(newPatternsInitCommand())

	return cmd
}

func newPatternsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the rule groups in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, nil)
			if err != nil {
				return err
			}
			source, err := s.patternSource()
			if err != nil {
				return err
			}
			sets, err := source.RuleSets()
			if err != nil {
				return fmt.Errorf("pattern configuration: %w", err)
			}

			data, err := patterns.Encode(sets)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.errOut, "Source: %s\n", source.Describe())
			_, err = s.out.Write(data)
			return err
		},
	}
}

func newPatternsTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <path>...",
		Short: "Explain which safe pattern, if any, matches each path",
		Long: `Evaluate each path against the "safe" rule group without touching the
filesystem. Relative paths are made absolute first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPatternsTest,
	}
}

func runPatternsTest(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, nil)
	if err != nil {
		return err
	}
	source, err := s.patternSource()
	if err != nil {
		return err
	}

	sets, err := source.RuleSets()
	if err != nil {
		return fmt.Errorf("pattern configuration: %w", err)
	}
	rules, err := sets.Group(patterns.SafeGroup)
	if err != nil {
		return fmt.Errorf("pattern configuration: %w", err)
	}
	m, err := matcher.New(afero.NewMemMapFs(), rules, nil)
	if err != nil {
		return fmt.Errorf("pattern configuration: %w", err)
	}

	match := color.New(color.FgGreen).SprintFunc()
	skip := color.New(color.FgYellow).SprintFunc()
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", arg, err)
		}

		v := m.Explain(path)
		switch {
		case v.Ignored:
			fmt.Fprintf(s.out, "%s: %s\n", path, skip("ignored"))
		case v.Matched():
			fmt.Fprintf(s.out, "%s: %s by %q (%s)\n", path, match("matched"), v.Pattern, v.Reason)
		default:
			fmt.Fprintf(s.out, "%s: no match\n", path)
		}
	}
	return nil
}

func newPatternsInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in pattern file for editing",
		Long: `Write the built-in rule groups to path (default
$XDG_CONFIG_HOME/node-module-cleaner/patterns.json). An existing file is only
replaced with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPatternsInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing pattern file")

	return cmd
}

func runPatternsInit(cmd *cobra.Command, args []string) error {
	target := config.UserPatternPath()
	if len(args) > 0 {
		target = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", target)
		}
		if !force {
			return fmt.Errorf("%s already exists; use --force to overwrite it", target)
		}
	}

	if err := filelock.LockAndWrite(target, patterns.DefaultBytes()); err != nil {
		return fmt.Errorf("write pattern file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default patterns to %s\n", target)
	return nil
}

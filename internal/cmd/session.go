package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/harrison/node-module-cleaner/internal/config"
	"github.com/harrison/node-module-cleaner/internal/display"
	"github.com/harrison/node-module-cleaner/internal/logger"
	"github.com/harrison/node-module-cleaner/internal/patterns"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// session is the state shared by the commands of one invocation
type session struct {
	cfg        *config.Config
	configPath string
	fs         afero.Fs
	out        io.Writer
	errOut     io.Writer
	log        logger.Logger
	console    *logger.ConsoleLogger
	file       *logger.FileLogger
}

// newSession loads the config, applies flags and an optional root argument,
// and sets up console logging. Run log files are opened separately.
func newSession(cmd *cobra.Command, args []string) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.MergeWithFlags(overrides(cmd, args))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ResolveRoot(); err != nil {
		return nil, err
	}

	s := &session{
		cfg:        cfg,
		configPath: used,
		fs:         afero.NewOsFs(),
		out:        cmd.OutOrStdout(),
		errOut:     cmd.ErrOrStderr(),
	}
	s.console = logger.NewConsoleLogger(s.errOut, cfg.LogLevel)
	s.log = s.console

	if used != "" {
		s.log.LogDebug(fmt.Sprintf("Loaded config from %s", used))
	}
	return s, nil
}

// overrides collects the flags that were given explicitly
func overrides(cmd *cobra.Command, args []string) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()

	if len(args) > 0 {
		root := args[0]
		o.Root = &root
	}
	if flags.Changed("full") {
		v, _ := flags.GetBool("full")
		o.FullScan = &v
	}
	if flags.Changed("workers") {
		v, _ := flags.GetInt("workers")
		o.Workers = &v
	}
	if flags.Changed("batch-size") {
		v, _ := flags.GetInt("batch-size")
		o.BatchSize = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	} else if verbose, _ := flags.GetBool("verbose"); verbose {
		v := "debug"
		o.LogLevel = &v
	}
	if flags.Changed("log-dir") {
		v, _ := flags.GetString("log-dir")
		o.LogDir = &v
	}
	if flags.Changed("patterns") {
		v, _ := flags.GetString("patterns")
		o.CustomPatternLocation = &v
	}
	if flags.Changed("dry-run") {
		v, _ := flags.GetBool("dry-run")
		o.DryRun = &v
	}
	return o
}

// openRunLog adds the per-run log file to the session's logger
func (s *session) openRunLog() error {
	dir := s.cfg.LogDir
	if dir == "" {
		dir = config.DefaultLogDir()
	}

	fl, err := logger.NewFileLogger(dir, s.cfg.LogLevel)
	if err != nil {
		return err
	}
	s.file = fl
	s.log = logger.NewMultiLogger(s.console, fl)
	s.log.LogDebug(fmt.Sprintf("Run log: %s", fl.Path()))
	return nil
}

// close flushes the run log, if one was opened
func (s *session) close() {
	if s.file == nil {
		return
	}
	if err := s.file.Close(); err != nil {
		s.console.LogWarn(fmt.Sprintf("Failed to close run log: %v", err))
	}
}

// patternSource resolves the pattern file for the run. Recoverable problems
// with a custom location are shown as a warning.
func (s *session) patternSource() (patterns.FileSource, error) {
	locator := patterns.Locator{SearchPaths: config.PatternSearchPaths()}
	loc, err := locator.Locate(s.cfg.CustomPatternLocation)
	if err != nil {
		return patterns.FileSource{}, fmt.Errorf("pattern configuration: %w", err)
	}

	if len(loc.Warnings) > 0 {
		for _, w := range loc.Warnings {
			s.log.LogWarn(w)
		}
		warning := display.WarnPatternLocation(loc.Warnings)
		warning.Plain = !isTerminal(s.errOut)
		warning.Display(s.errOut)
	}

	src := loc.Source()
	s.log.LogDebug(fmt.Sprintf("Using patterns from %s", src.Describe()))
	return src, nil
}

// progress returns a phase indicator on the error stream
func (s *session) progress(total int) *display.ProgressIndicator {
	p := display.NewProgressIndicator(s.errOut, total)
	if !isTerminal(s.errOut) {
		p.Plain()
	}
	return p
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/node-module-cleaner/internal/models"
)

// FileLogger writes one log file per run into a log directory and keeps a
// latest.log symlink pointing at the most recent run. Every removal is logged
// here, so the file doubles as the audit trail of what was deleted.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens a timestamped
// run-YYYYMMDD-HHMMSS.log file and repoints latest.log at it.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile, file, err := openRunFile(logDir, time.Now())
	if err != nil {
		return nil, err
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== node-module-cleaner run log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// openRunFile creates the run log, adding a numeric suffix when two runs start
// within the same second.
func openRunFile(logDir string, now time.Time) (string, *os.File, error) {
	base := fmt.Sprintf("run-%s", now.Format("20060102-150405"))
	for i := 0; i < 100; i++ {
		name := base + ".log"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.log", base, i)
		}
		path := filepath.Join(logDir, name)

		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return path, file, nil
		}
		if !os.IsExist(err) {
			return "", nil, fmt.Errorf("failed to create run log file: %w", err)
		}
	}
	return "", nil, fmt.Errorf("failed to create run log file: too many runs at %s", base)
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) LogTrace(message string) { fl.logWithLevel("TRACE", message) }
func (fl *FileLogger) LogDebug(message string) { fl.logWithLevel("DEBUG", message) }
func (fl *FileLogger) LogInfo(message string)  { fl.logWithLevel("INFO", message) }
func (fl *FileLogger) LogWarn(message string)  { fl.logWithLevel("WARN", message) }
func (fl *FileLogger) LogError(message string) { fl.logWithLevel("ERROR", message) }

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !allows(fl.logLevel, strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

func (fl *FileLogger) writeBlock(level string, lines []string) {
	if len(lines) == 0 || !allows(fl.logLevel, level) {
		return
	}

	ts := timestamp()
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "[%s] %s\n", ts, line)
	}
	fl.writeRunLog(b.String())
}

// LogWalkSummary writes the walk summary at INFO level.
func (fl *FileLogger) LogWalkSummary(summary models.WalkSummary) {
	fl.writeBlock("info", walkSummaryLines(summary, nil))
}

// LogMatchSummary writes the match summary at INFO level and the hit table at
// DEBUG level.
func (fl *FileLogger) LogMatchSummary(summary models.MatchSummary) {
	fl.writeBlock("info", matchSummaryLines(summary, nil))
	fl.writeBlock("debug", hitLines(summary.Hits))
}

// LogRemovalSummary writes the removal summary at INFO level.
func (fl *FileLogger) LogRemovalSummary(result models.RemovalResult) {
	fl.writeBlock("info", removalSummaryLines(result, nil))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}

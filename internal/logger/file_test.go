package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/node-module-cleaner/internal/models"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

// TestFileLoggerCreatesRunLog verifies the directory, run file and header
func TestFileLoggerCreatesRunLog(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	logger, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	name := filepath.Base(logger.Path())
	if !strings.HasPrefix(name, "run-") || !strings.HasSuffix(name, ".log") {
		t.Errorf("unexpected run log name %q", name)
	}
	if filepath.Dir(logger.Path()) != logDir {
		t.Errorf("run log %q not inside %q", logger.Path(), logDir)
	}
	if !strings.Contains(readLog(t, logger.Path()), "=== node-module-cleaner run log ===") {
		t.Error("run log header missing")
	}
}

// TestFileLoggerLatestSymlink verifies latest.log follows the newest run
func TestFileLoggerLatestSymlink(t *testing.T) {
	logDir := t.TempDir()

	first, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	first.Close()

	second, err := NewFileLogger(logDir, "info")
	if err != nil {
		t.Fatalf("second NewFileLogger() error = %v", err)
	}
	defer second.Close()

	if first.Path() == second.Path() {
		t.Fatalf("two runs share log file %q", first.Path())
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}
	if target != filepath.Base(second.Path()) {
		t.Errorf("latest.log -> %q, want %q", target, filepath.Base(second.Path()))
	}
}

func TestFileLoggerLevelsAndSummaries(t *testing.T) {
	logger, err := NewFileLogger(t.TempDir(), "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.LogDebug("hidden debug line")
	logger.LogInfo("Removed file: /p/node_modules/a/README.md")
	logger.LogError("Failed to remove directory /p/node_modules/b/test")
	logger.LogWalkSummary(models.WalkSummary{Root: "/p", Workers: 2, Elapsed: time.Second})
	logger.LogMatchSummary(models.MatchSummary{Files: 1, Hits: map[string]int{"readme*": 1}})
	logger.LogRemovalSummary(models.RemovalResult{TargetFiles: 1, RemovedFiles: 1})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := readLog(t, logger.Path())
	for _, want := range []string{
		"[INFO] Removed file: /p/node_modules/a/README.md",
		"[ERROR] Failed to remove directory",
		"=== Walk Summary ===",
		"=== Match Summary ===",
		"=== Removal Summary ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("run log missing %q:\n%s", want, out)
		}
	}
	for _, notWant := range []string{"hidden debug line", "Pattern hits", "\033["} {
		if strings.Contains(out, notWant) {
			t.Errorf("run log should not contain %q", notWant)
		}
	}

	// writes after Close are dropped rather than panicking
	logger.LogInfo("late")
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestFileLoggerBadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileLogger(filepath.Join(file, "logs"), "info"); err == nil {
		t.Error("expected error when the log directory cannot be created")
	}
}

package logger

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/node-module-cleaner/internal/models"
)

func TestNewConsoleLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "DEBUG")

	if logger.writer != buf {
		t.Error("writer not set correctly")
	}
	if logger.Level() != "debug" {
		t.Errorf("Level() = %q, want debug", logger.Level())
	}
	if logger.colorOutput {
		t.Error("color output enabled for a buffer")
	}

	// nil writer discards everything
	NewConsoleLogger(nil, "info").LogInfo("dropped")
	NewConsoleLogger(nil, "info").LogWalkSummary(models.WalkSummary{})
}

func TestConsoleLoggerFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogWarn("Dry run: nothing will be removed")

	pattern := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[WARN\] Dry run: nothing will be removed\n$`)
	if !pattern.MatchString(buf.String()) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogWalkSummary(t *testing.T) {
	var locations []string
	for i := 0; i < 12; i++ {
		locations = append(locations, fmt.Sprintf("/home/u/p%d/node_modules", i))
	}

	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogWalkSummary(models.WalkSummary{
		Root:      "/home/u",
		Workers:   8,
		Stats:     models.WalkStats{Files: 90, Dirs: 10, NodeModules: 12, Ignored: 3},
		Elapsed:   2 * time.Second,
		Locations: locations,
	})
	out := buf.String()

	for _, want := range []string{
		"=== Walk Summary ===",
		"Root: /home/u (workers: 8)",
		"Elapsed: 2.00s",
		"Directories scanned: 10",
		"Files scanned: 90",
		"Entries ignored: 3",
		"node_modules found: 12",
		"Throughput: 50 entries/s, 6.0 node_modules/s",
		"Showing first 10 of 12 locations:",
		"  1. /home/u/p0/node_modules",
		"  10. /home/u/p9/node_modules",
		"  ... and 2 more",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "p10/node_modules") {
		t.Error("summary lists more than the sample size")
	}
}

func TestLogWalkSummaryNothingFound(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogWalkSummary(models.WalkSummary{Root: "/"})

	if !strings.Contains(buf.String(), "No node_modules directories found") {
		t.Errorf("empty walk should still be summarized, got %q", buf.String())
	}
}

func TestLogMatchSummary(t *testing.T) {
	summary := models.MatchSummary{
		Locations: 2,
		Files:     5,
		Hits:      map[string]int{"readme*": 3, "license": 2},
		Elapsed:   1500 * time.Millisecond,
	}

	t.Run("info hides hit table", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewConsoleLogger(buf, "info").LogMatchSummary(summary)
		out := buf.String()

		if !strings.Contains(out, "Matched files: 5") || !strings.Contains(out, "Locations searched: 2") {
			t.Errorf("unexpected summary %q", out)
		}
		if strings.Contains(out, "Pattern hits") {
			t.Error("hit table shown at info level")
		}
	})

	t.Run("debug shows sorted hit table", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewConsoleLogger(buf, "debug").LogMatchSummary(summary)
		out := buf.String()

		license := strings.Index(out, "license")
		readme := strings.Index(out, "readme*")
		if license < 0 || readme < 0 || license > readme {
			t.Errorf("hit table missing or unsorted:\n%s", out)
		}
	})

	t.Run("nothing matched", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewConsoleLogger(buf, "info").LogMatchSummary(models.MatchSummary{})
		if !strings.Contains(buf.String(), "Nothing matched") {
			t.Errorf("got %q", buf.String())
		}
	})
}

func TestLogRemovalSummary(t *testing.T) {
	tests := []struct {
		name    string
		result  models.RemovalResult
		want    []string
		notWant string
	}{
		{
			name:    "removed",
			result:  models.RemovalResult{TargetFiles: 3, TargetDirs: 1, TargetBytes: 2048, RemovedFiles: 3, RemovedDirs: 1},
			want:    []string{"Targets: 3 files, 1 directories (2KiB)", "Removed: 3 files, 1 directories", "Failed: 0"},
			notWant: "Skipped",
		},
		{
			name:   "failures",
			result: models.RemovalResult{TargetFiles: 2, RemovedFiles: 1, Failed: 1, Skipped: 1},
			want:   []string{"Skipped: 1", "Failed: 1"},
		},
		{
			name:    "dry run",
			result:  models.RemovalResult{TargetFiles: 2, DryRun: true},
			want:    []string{"Dry run: nothing was removed"},
			notWant: "Removed:",
		},
		{
			name:    "aborted",
			result:  models.RemovalResult{TargetFiles: 2, Aborted: true},
			want:    []string{"Aborted: nothing was removed"},
			notWant: "Removed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewConsoleLogger(buf, "info").LogRemovalSummary(tt.result)
			out := buf.String()

			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in:\n%s", want, out)
				}
			}
			if tt.notWant != "" && strings.Contains(out, tt.notWant) {
				t.Errorf("unexpected %q in:\n%s", tt.notWant, out)
			}
		})
	}
}

func TestSummariesRespectLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "warn")
	logger.LogWalkSummary(models.WalkSummary{})
	logger.LogMatchSummary(models.MatchSummary{})
	logger.LogRemovalSummary(models.RemovalResult{})

	if buf.Len() != 0 {
		t.Errorf("summaries written at warn level: %q", buf.String())
	}
}

// TestConsoleLoggerConcurrency verifies lines do not interleave when the
// walker logs from many goroutines.
func TestConsoleLoggerConcurrency(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.LogInfo(fmt.Sprintf("worker %d", n))
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "[INFO] worker ") {
			t.Errorf("garbled line %q", line)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{350 * time.Millisecond, "350ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NewNoOpLogger()
	l.LogInfo("x")
	l.LogWalkSummary(models.WalkSummary{})
	l.LogMatchSummary(models.MatchSummary{})
	l.LogRemovalSummary(models.RemovalResult{})
}

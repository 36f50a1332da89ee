package logger

import (
	"strings"
	"sync"
	"testing"
)

// TestProgressBarRender verifies correct ASCII bar rendering
func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		width    int
		expected string
	}{
		{"empty progress", 0, 10, 10, "[          ] 0/10 (0%)"},
		{"half progress", 5, 10, 10, "[=====     ] 5/10 (50%)"},
		{"full progress", 10, 10, 10, "[==========] 10/10 (100%)"},
		{"quarter progress", 2, 8, 8, "[==      ] 2/8 (25%)"},
		{"large width", 30, 100, 20, "[======              ] 30/100 (30%)"},
		{"over total caps the bar", 15, 10, 10, "[==========] 15/10 (100%)"},
		{"negative current", -5, 10, 4, "[    ] -5/10 (0%)"},
		{"zero total", 0, 0, 4, "[    ] 0/0 (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, tt.width, false)
			pb.Update(tt.current)

			if result := pb.Render(); result != tt.expected {
				t.Errorf("Render() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestProgressBarColors(t *testing.T) {
	pb := NewProgressBar(10, 10, true)
	pb.Update(5)
	if result := pb.Render(); !strings.Contains(result, "\033[") {
		t.Errorf("Render() with color should contain ANSI codes, got: %q", result)
	}

	plain := NewProgressBar(10, 10, false)
	plain.Update(5)
	if result := plain.Render(); strings.Contains(result, "\033[") {
		t.Errorf("Render() without color should not contain ANSI codes, got: %q", result)
	}
}

func TestProgressBarPrefix(t *testing.T) {
	pb := NewProgressBar(4, 4, false)
	pb.SetPrefix("Removing: ")
	pb.Add(2)

	if got, want := pb.Render(), "Removing: [==  ] 2/4 (50%)"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestProgressBarCounting(t *testing.T) {
	pb := NewProgressBar(3, 0, false)
	if pb.width != 10 {
		t.Errorf("width = %d, want default 10", pb.width)
	}

	pb.Increment()
	pb.Add(1)
	if pb.Current() != 2 || pb.Done() {
		t.Errorf("Current() = %d, Done() = %v after two items", pb.Current(), pb.Done())
	}
	pb.Increment()
	if !pb.Done() {
		t.Error("Done() = false after all items")
	}
	if pb.Total() != 3 {
		t.Errorf("Total() = %d, want 3", pb.Total())
	}
	if pb.Percentage() != 100 {
		t.Errorf("Percentage() = %d, want 100", pb.Percentage())
	}
}

// TestProgressBarConcurrency tests thread-safe concurrent updates
func TestProgressBarConcurrency(t *testing.T) {
	pb := NewProgressBar(100, 10, false)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				pb.Increment()
				_ = pb.Percentage()
				_ = pb.Render()
			}
		}()
	}
	wg.Wait()

	if pb.Current() != 100 {
		t.Errorf("After concurrent updates, Current() = %d, want 100", pb.Current())
	}
}

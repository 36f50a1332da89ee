package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "nmcleaner") {
		t.Errorf("Help text should contain 'nmcleaner', got: %s", output)
	}
	if !strings.Contains(output, "node_modules") {
		t.Errorf("Help text should mention node_modules, got: %s", output)
	}
	for _, flag := range []string{"--config", "--full", "--workers", "--batch-size", "--log-level", "--log-dir", "--patterns", "--verbose"} {
		if !strings.Contains(output, flag) {
			t.Errorf("Help text should list %s", flag)
		}
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "nmcleaner" {
		t.Errorf("Expected Use to be 'nmcleaner', got '%s'", cmd.Use)
	}

	want := map[string]bool{"scan": false, "clean": false, "patterns": false, "history": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	cmd := NewRootCommand()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "version") {
		t.Errorf("Version output should contain 'version', got: %s", buf.String())
	}
}

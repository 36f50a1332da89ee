package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user config and state directories
const AppName = "node-module-cleaner"

// HomeEnv overrides the state directory when set
const HomeEnv = "NMCLEANER_HOME"

// StateDir returns the directory holding the history database, the run lock
// and the default log directory.
// Priority order:
//  1. NMCLEANER_HOME environment variable (if set)
//  2. $XDG_STATE_HOME/node-module-cleaner
func StateDir() string {
	if home := os.Getenv(HomeEnv); home != "" {
		return home
	}
	return filepath.Join(xdg.StateHome, AppName)
}

// HistoryDBPath returns $STATE/history.db
func HistoryDBPath() string {
	return filepath.Join(StateDir(), "history.db")
}

// LockPath returns the lock file taken by clean
func LockPath() string {
	return filepath.Join(StateDir(), "clean.lock")
}

// DefaultLogDir returns $STATE/logs
func DefaultLogDir() string {
	return filepath.Join(StateDir(), "logs")
}

// ConfigSearchPaths lists config file candidates, most specific first
func ConfigSearchPaths() []string {
	return []string{
		"nmcleaner.yaml",
		"nmcleaner.toml",
		filepath.Join(xdg.ConfigHome, AppName, "config.yaml"),
		filepath.Join(xdg.ConfigHome, AppName, "config.toml"),
		filepath.Join("/etc", AppName, "config.yaml"),
		filepath.Join("/etc", AppName, "config.toml"),
	}
}

// PatternSearchPaths lists pattern file candidates, most specific first
func PatternSearchPaths() []string {
	return []string{
		"patterns.json",
		filepath.Join(xdg.ConfigHome, AppName, "patterns.json"),
		filepath.Join("/etc", AppName, "patterns.json"),
	}
}

// UserPatternPath is where patterns init writes by default
func UserPatternPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "patterns.json")
}

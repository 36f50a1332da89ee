package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/node-module-cleaner/internal/classify"
	"github.com/harrison/node-module-cleaner/internal/logger"
	"github.com/harrison/node-module-cleaner/internal/walker"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Config represents node-module-cleaner configuration options
type Config struct {
	// Root is the directory the walk starts from
	Root string `yaml:"root" toml:"root"`

	// FullScan disables the excluded-names tier of the path classifier
	FullScan bool `yaml:"full_scan" toml:"full_scan"`

	// Workers is the walker pool size (0 = available parallelism)
	Workers int `yaml:"workers" toml:"workers"`

	// BatchSize is the number of hits a worker buffers before publishing them
	BatchSize int `yaml:"batch_size" toml:"batch_size"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogDir is the directory where run logs are written (empty = state dir)
	LogDir string `yaml:"log_dir" toml:"log_dir"`

	// DryRun makes clean report what it would remove without removing it
	DryRun bool `yaml:"dry_run" toml:"dry_run"`

	// CustomPatternLocation points at a pattern file tried before the search paths
	CustomPatternLocation string `yaml:"custom_pattern_location" toml:"custom_pattern_location"`

	// ExcludeNames are path components the walker skips unless FullScan is set
	ExcludeNames []string `yaml:"exclude_names" toml:"exclude_names"`

	// HistoryEnabled records every run in the history database
	HistoryEnabled bool `yaml:"history_enabled" toml:"history_enabled"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Root:           "/",
		FullScan:       false,
		Workers:        0, // available parallelism
		BatchSize:      walker.DefaultBatchSize,
		LogLevel:       "info",
		LogDir:         "",
		DryRun:         false,
		ExcludeNames:   append([]string(nil), classify.DefaultExcludedNames...),
		HistoryEnabled: true,
	}
}

// decoded is a parsed config file together with the set of keys it spelled out,
// so that explicit zero values can still override defaults
type decoded struct {
	cfg     Config
	present map[string]bool
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file decoded
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		file, err = decodeTOML(data)
	} else {
		file, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.apply(file)
	return cfg, nil
}

func decodeYAML(data []byte) (decoded, error) {
	var d decoded
	if err := yaml.Unmarshal(data, &d.cfg); err != nil {
		return d, err
	}

	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return d, err
	}
	d.present = make(map[string]bool, len(rawMap))
	for key := range rawMap {
		d.present[key] = true
	}
	return d, nil
}

func decodeTOML(data []byte) (decoded, error) {
	var d decoded
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return d, err
	}
	if err := tree.Unmarshal(&d.cfg); err != nil {
		return d, err
	}

	d.present = make(map[string]bool)
	for _, key := range tree.Keys() {
		d.present[key] = true
	}
	return d, nil
}

// apply copies every key the file set onto c
func (c *Config) apply(file decoded) {
	set := file.present
	fc := file.cfg

	if set["root"] {
		c.Root = fc.Root
	}
	if set["full_scan"] {
		c.FullScan = fc.FullScan
	}
	if set["workers"] {
		c.Workers = fc.Workers
	}
	if set["batch_size"] {
		c.BatchSize = fc.BatchSize
	}
	if set["log_level"] {
		c.LogLevel = fc.LogLevel
	}
	if set["log_dir"] {
		c.LogDir = fc.LogDir
	}
	if set["dry_run"] {
		c.DryRun = fc.DryRun
	}
	if set["custom_pattern_location"] {
		c.CustomPatternLocation = fc.CustomPatternLocation
	}
	// an explicit empty list clears the default exclusions
	if set["exclude_names"] {
		c.ExcludeNames = fc.ExcludeNames
		if c.ExcludeNames == nil {
			c.ExcludeNames = []string{}
		}
	}
	if set["history_enabled"] {
		c.HistoryEnabled = fc.HistoryEnabled
	}
}

// Locate returns the first existing config file from the search paths, or ""
// when there is none.
func Locate() string {
	for _, candidate := range ConfigSearchPaths() {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// Load reads the config file at path, or the located one when path is empty.
// An explicitly named file must exist.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = Locate()
		if path == "" {
			return DefaultConfig(), "", nil
		}
	} else {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, "", fmt.Errorf("expand config path %q: %w", path, err)
		}
		path = expanded
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("config file: %w", err)
		}
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Overrides holds CLI flag values. Nil fields were not given on the command line.
type Overrides struct {
	Root                  *string
	FullScan              *bool
	Workers               *int
	BatchSize             *int
	LogLevel              *string
	LogDir                *string
	DryRun                *bool
	CustomPatternLocation *string
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Root != nil {
		c.Root = *o.Root
	}
	if o.FullScan != nil {
		c.FullScan = *o.FullScan
	}
	if o.Workers != nil {
		c.Workers = *o.Workers
	}
	if o.BatchSize != nil {
		c.BatchSize = *o.BatchSize
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.DryRun != nil {
		c.DryRun = *o.DryRun
	}
	if o.CustomPatternLocation != nil {
		c.CustomPatternLocation = *o.CustomPatternLocation
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("root cannot be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be >= 0, got %d", c.BatchSize)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}
	for _, name := range c.ExcludeNames {
		if name == "" || strings.ContainsRune(name, '/') {
			return fmt.Errorf("exclude_names entries must be single path components, got %q", name)
		}
	}
	return nil
}

// ResolveRoot expands a leading ~ in Root and makes it absolute.
func (c *Config) ResolveRoot() error {
	expanded, err := homedir.Expand(c.Root)
	if err != nil {
		return fmt.Errorf("failed to expand root %q: %w", c.Root, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return fmt.Errorf("resolve root %q: %w", c.Root, err)
	}
	c.Root = abs
	return nil
}

// Classifier builds the walker's path classifier from the configuration
func (c *Config) Classifier() classify.Classifier {
	cl := classify.New(c.FullScan)
	cl.ExcludedNames = c.ExcludeNames
	return cl
}

// Package patterns loads the rule sets that decide which files inside
// node_modules are safe to remove.
//
// A pattern file maps rule-group names to rule sets. The file format is JSON
// (any YAML is accepted too, since it is parsed with yaml.v3):
//
//	{
//	  "$default": "safe",
//	  "safe": {
//	    "patterns": ["readme*", "/test/", "license"],
//	    "ignore":   ["/**/node_modules/test/**"]
//	  }
//	}
//
// A rule set may also be written as a bare list of patterns. Keys starting
// with "$" carry metadata and are not rule groups.
package patterns

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SafeGroup is the rule group the matcher consumes.
const SafeGroup = "safe"

// FileName is the name pattern files are looked up by.
const FileName = "patterns.json"

//go:embed default_patterns.json
var defaultPatterns []byte

// ErrGroupNotFound is returned when a requested rule group is absent.
var ErrGroupNotFound = errors.New("rule group not found")

// RuleSet is one named group of rules.
type RuleSet struct {
	// Patterns are evaluated in order; the first match wins
	Patterns []string `yaml:"patterns" json:"patterns"`
	// Ignore holds doublestar globs matched against the absolute, slash-separated
	// path. Files matching any of them are never pattern-tested.
	Ignore []string `yaml:"ignore,omitempty" json:"ignore,omitempty"`
}

// UnmarshalYAML accepts either a mapping or a bare sequence of patterns.
func (r *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*r = RuleSet{Patterns: list}
		return nil
	}

	type plain RuleSet
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = RuleSet(p)
	return nil
}

// RuleSets maps rule-group names to their rule sets.
type RuleSets map[string]RuleSet

// Group returns the named rule set.
func (r RuleSets) Group(name string) (RuleSet, error) {
	rs, ok := r[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %q", ErrGroupNotFound, name)
	}
	return rs, nil
}

// Names returns the group names in sorted order.
func (r RuleSets) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a pattern file.
func Parse(data []byte) (RuleSets, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("parse patterns: no rule groups defined")
	}

	sets := make(RuleSets, len(raw))
	for name, node := range raw {
		if strings.HasPrefix(name, "$") {
			continue
		}
		var rs RuleSet
		if err := node.Decode(&rs); err != nil {
			return nil, fmt.Errorf("parse rule group %q: %w", name, err)
		}
		sets[name] = rs
	}
	return sets, nil
}

// Load reads and parses the pattern file at path.
func Load(path string) (RuleSets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	sets, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sets, nil
}

// Default returns the rule sets compiled into the binary.
func Default() RuleSets {
	sets, err := Parse(defaultPatterns)
	if err != nil {
		panic(fmt.Sprintf("embedded patterns are invalid: %v", err))
	}
	return sets
}

// DefaultBytes returns the embedded pattern file as written.
func DefaultBytes() []byte {
	return append([]byte(nil), defaultPatterns...)
}

// Encode renders rule sets in the pattern file format.
func Encode(sets RuleSets) ([]byte, error) {
	doc := make(map[string]any, len(sets)+1)
	if _, ok := sets[SafeGroup]; ok {
		doc["$default"] = SafeGroup
	}
	for name, rs := range sets {
		doc[name] = rs
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode patterns: %w", err)
	}
	return append(out, '\n'), nil
}

// Source supplies rule sets to the matcher.
type Source interface {
	RuleSets() (RuleSets, error)
}

// FileSource reads rule sets from Path, or the embedded defaults if Path is empty.
type FileSource struct {
	Path string
}

// RuleSets implements Source.
func (s FileSource) RuleSets() (RuleSets, error) {
	if s.Path == "" {
		return Default(), nil
	}
	return Load(s.Path)
}

// Describe names where the rules come from, for log output.
func (s FileSource) Describe() string {
	if s.Path == "" {
		return "built-in defaults"
	}
	return s.Path
}

// StaticSource serves a fixed set of rules.
type StaticSource RuleSets

// RuleSets implements Source.
func (s StaticSource) RuleSets() (RuleSets, error) {
	return RuleSets(s), nil
}

// Package matcher finds the files inside node_modules directories that the
// "safe" rule group marks as removable.
//
// Locations are walked one after another on the calling goroutine. Every
// regular file is tested against the configured patterns in order and the
// first pattern to match decides the outcome; remaining patterns are not
// consulted. A matched path is then filed under its current type, so a path
// can end up in Files or Dirs but never both.
package matcher

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/node-module-cleaner/internal/models"
	"github.com/harrison/node-module-cleaner/internal/patterns"
	"github.com/hashicorp/go-multierror"
	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"
)

// SampleLimit is how many matches per pattern are logged individually.
const SampleLimit = 10

// Logger is the subset of the console logger the matcher reports through.
type Logger interface {
	LogDebug(message string)
}

type discard struct{}

func (discard) LogDebug(string) {}

// Matcher tests files against one compiled rule set.
type Matcher struct {
	fs       afero.Fs
	patterns []Pattern
	ignore   []string
	hits     map[string]int
	log      Logger
}

// Result holds the paths matched in one pass.
type Result struct {
	Files     *strset.Set
	Dirs      *strset.Set
	Hits      map[string]int
	Locations int
	Elapsed   time.Duration
}

func newResult() *Result {
	return &Result{
		Files: strset.New(),
		Dirs:  strset.New(),
		Hits:  map[string]int{},
	}
}

// MatchedFiles returns the matched regular files in sorted order.
func (r *Result) MatchedFiles() []string {
	return sortedList(r.Files)
}

// MatchedDirectories returns the matched directories in sorted order.
func (r *Result) MatchedDirectories() []string {
	return sortedList(r.Dirs)
}

// Empty reports whether nothing matched.
func (r *Result) Empty() bool {
	return r.Files.IsEmpty() && r.Dirs.IsEmpty()
}

// Summary converts the result for the logger.
func (r *Result) Summary() models.MatchSummary {
	return models.MatchSummary{
		Locations: r.Locations,
		Files:     r.Files.Size(),
		Dirs:      r.Dirs.Size(),
		Hits:      r.Hits,
		Elapsed:   r.Elapsed,
	}
}

func sortedList(s *strset.Set) []string {
	list := s.List()
	sort.Strings(list)
	return list
}

// New compiles rules. Every invalid pattern or ignore glob is reported, not
// just the first.
func New(fs afero.Fs, rules patterns.RuleSet, log Logger) (*Matcher, error) {
	if log == nil {
		log = discard{}
	}

	var errs *multierror.Error
	compiled := make([]Pattern, 0, len(rules.Patterns))
	for _, raw := range rules.Patterns {
		p, err := Compile(raw)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		compiled = append(compiled, p)
	}
	for _, glob := range rules.Ignore {
		if !doublestar.ValidatePattern(glob) {
			errs = multierror.Append(errs, fmt.Errorf("%w: ignore glob %q", ErrInvalidPattern, glob))
		}
	}
	if len(rules.Patterns) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("rule set has no patterns"))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Matcher{
		fs:       fs,
		patterns: compiled,
		ignore:   rules.Ignore,
		hits:     make(map[string]int),
		log:      log,
	}, nil
}

// MatchPatterns loads the "safe" group from source and matches locations with
// it. When the rules cannot be obtained or compiled the error is returned with
// an empty result; nothing is matched against a partial rule set.
func MatchPatterns(fs afero.Fs, source patterns.Source, locations []string, log Logger) (*Result, error) {
	sets, err := source.RuleSets()
	if err != nil {
		return newResult(), fmt.Errorf("load patterns: %w", err)
	}
	rules, err := sets.Group(patterns.SafeGroup)
	if err != nil {
		return newResult(), err
	}
	m, err := New(fs, rules, log)
	if err != nil {
		return newResult(), fmt.Errorf("rule group %q: %w", patterns.SafeGroup, err)
	}
	return m.MatchLocations(locations), nil
}

// Patterns returns the compiled patterns in evaluation order.
func (m *Matcher) Patterns() []Pattern {
	return append([]Pattern(nil), m.patterns...)
}

// Hits returns a copy of the per-pattern match counts across all passes.
func (m *Matcher) Hits() map[string]int {
	out := make(map[string]int, len(m.hits))
	for k, v := range m.hits {
		out[k] = v
	}
	return out
}

// MatchLocations walks every location and classifies the files inside.
// Entries that cannot be read are ignored.
func (m *Matcher) MatchLocations(locations []string) *Result {
	start := time.Now()
	res := newResult()
	res.Locations = len(locations)
	before := m.Hits()

	for _, loc := range locations {
		_ = afero.Walk(m.fs, loc, func(path string, info os.FileInfo, err error) error {
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
			m.visit(path, res)
			return nil
		})
	}

	for pattern, n := range m.hits {
		if d := n - before[pattern]; d > 0 {
			res.Hits[pattern] = d
		}
	}
	res.Elapsed = time.Since(start)
	return res
}

func (m *Matcher) visit(path string, res *Result) {
	t := normalize(path)
	if m.ignored(t) {
		return
	}
	p, reason := m.first(t)
	if reason == NoMatch {
		return
	}
	m.record(p, path, reason)

	info, err := lstat(m.fs, path)
	if err != nil {
		return
	}
	switch {
	case info.Mode().IsRegular():
		if !res.Dirs.Has(path) {
			res.Files.Add(path)
		}
	case info.IsDir():
		if !res.Files.Has(path) {
			res.Dirs.Add(path)
		}
	}
}

func (m *Matcher) first(t target) (Pattern, Reason) {
	for _, p := range m.patterns {
		if r := p.match(t); r != NoMatch {
			return p, r
		}
	}
	return Pattern{}, NoMatch
}

func (m *Matcher) ignored(t target) bool {
	for _, glob := range m.ignore {
		if ok, _ := doublestar.Match(glob, t.path); ok {
			return true
		}
	}
	return false
}

func (m *Matcher) record(p Pattern, path string, reason Reason) {
	m.hits[p.raw]++
	switch n := m.hits[p.raw]; {
	case n <= SampleLimit:
		m.log.LogDebug(fmt.Sprintf("Pattern %q matched %s (%s)", p.raw, path, reason))
	case n == SampleLimit+1:
		m.log.LogDebug(fmt.Sprintf("Suppressing further matches for pattern %q", p.raw))
	}
}

// Verdict explains how one path fares against the rules.
type Verdict struct {
	Path    string
	Ignored bool
	Pattern string
	Reason  Reason
}

// Matched reports whether a pattern claimed the path.
func (v Verdict) Matched() bool {
	return v.Reason != NoMatch
}

// Explain evaluates path without touching the filesystem or the hit counts.
func (m *Matcher) Explain(path string) Verdict {
	t := normalize(path)
	v := Verdict{Path: path}
	if m.ignored(t) {
		v.Ignored = true
		return v
	}
	p, reason := m.first(t)
	v.Pattern = p.raw
	v.Reason = reason
	return v
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if lfs, ok := fs.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}

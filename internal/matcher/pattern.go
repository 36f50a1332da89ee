package matcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Reason names the check that made a pattern match.
type Reason int

const (
	NoMatch Reason = iota
	// DirectorySegment: "/name/" occurs in the path
	DirectorySegment
	// PrefixName: the base name starts with the prefix of "prefix*"
	PrefixName
	// PrefixSegment: the prefix of "prefix*" is a whole path segment
	PrefixSegment
	// MixedName: the base name starts and ends with the halves of "pre*fix"
	MixedName
	// MixedSegment: "prefix" joined is a whole path segment
	MixedSegment
	// ExactName: the base name equals the pattern
	ExactName
	// ExactExtension: the extension equals the pattern
	ExactExtension
	// ExactSegment: some path segment equals the pattern
	ExactSegment
)

var reasonNames = map[Reason]string{
	NoMatch:          "no match",
	DirectorySegment: "directory segment",
	PrefixName:       "name prefix",
	PrefixSegment:    "prefix segment",
	MixedName:        "name prefix and suffix",
	MixedSegment:     "wildcard segment",
	ExactName:        "exact name",
	ExactExtension:   "extension",
	ExactSegment:     "path segment",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

type kind int

const (
	segmentKind kind = iota
	prefixKind
	mixedKind
	exactKind
)

// ErrInvalidPattern is wrapped by every Compile error.
var ErrInvalidPattern = errors.New("invalid pattern")

// Pattern is one compiled rule.
type Pattern struct {
	raw  string
	kind kind
	// lowered halves around the wildcard; exact patterns use prefix only
	prefix string
	suffix string
}

// Compile parses a rule string.
//
//	/name/      the literal "/name/" appears in the path (case-sensitive)
//	prefix*     base name starts with prefix, or prefix is a path segment
//	pre*fix     "pre" occurs before "fix" and the base name is pre...fix,
//	            or "prefix" is a path segment
//	name        base name, extension or any path segment equals name
//
// All but the first form compare case-insensitively.
func Compile(raw string) (Pattern, error) {
	switch {
	case raw == "":
		return Pattern{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	case strings.Trim(raw, "/") == "":
		return Pattern{}, fmt.Errorf("%w: %q names no directory", ErrInvalidPattern, raw)
	}

	if len(raw) > 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") {
		return Pattern{raw: raw, kind: segmentKind, prefix: raw}, nil
	}
	if strings.Contains(raw, "/") {
		return Pattern{}, fmt.Errorf("%w: %q: only /name/ patterns may contain a separator", ErrInvalidPattern, raw)
	}

	lowered := strings.ToLower(raw)
	switch strings.Count(raw, "*") {
	case 0:
		return Pattern{raw: raw, kind: exactKind, prefix: lowered}, nil
	case 1:
		if raw == "*" {
			return Pattern{}, fmt.Errorf("%w: %q matches everything", ErrInvalidPattern, raw)
		}
		prefix, suffix, _ := strings.Cut(lowered, "*")
		if suffix == "" {
			return Pattern{raw: raw, kind: prefixKind, prefix: prefix}, nil
		}
		return Pattern{raw: raw, kind: mixedKind, prefix: prefix, suffix: suffix}, nil
	default:
		return Pattern{}, fmt.Errorf("%w: %q has more than one wildcard", ErrInvalidPattern, raw)
	}
}

// MustCompile is Compile for patterns known to be valid.
func MustCompile(raw string) Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern as written.
func (p Pattern) String() string {
	return p.raw
}

// Match tests path, and its base name, against the pattern.
func (p Pattern) Match(path string) (Reason, bool) {
	r := p.match(normalize(path))
	return r, r != NoMatch
}

func (p Pattern) match(t target) Reason {
	switch p.kind {
	case segmentKind:
		if strings.Contains(t.path, p.prefix) {
			return DirectorySegment
		}
	case prefixKind:
		if strings.HasPrefix(t.base, p.prefix) {
			return PrefixName
		}
		if t.hasSegment(p.prefix) {
			return PrefixSegment
		}
	case mixedKind:
		// the base name is tested on its own, so an earlier occurrence of
		// the suffix higher up the path cannot veto it
		nameOK := len(t.base) >= len(p.prefix)+len(p.suffix) &&
			strings.HasPrefix(t.base, p.prefix) && strings.HasSuffix(t.base, p.suffix)
		if nameOK && p.ordered(t.base) {
			return MixedName
		}
		if p.ordered(t.lower) {
			if nameOK {
				return MixedName
			}
			if t.hasSegment(p.prefix + p.suffix) {
				return MixedSegment
			}
		}
	case exactKind:
		if t.base == p.prefix {
			return ExactName
		}
		if ext, ok := extension(t.base); ok && ext == p.prefix {
			return ExactExtension
		}
		if t.hasSegment(p.prefix) {
			return ExactSegment
		}
	}
	return NoMatch
}

// ordered reports whether the first prefix occurrence in s comes before the
// first suffix occurrence.
func (p Pattern) ordered(s string) bool {
	i := strings.Index(s, p.prefix)
	j := strings.Index(s, p.suffix)
	return i >= 0 && j >= 0 && i < j
}

// target is a path prepared once for every pattern.
type target struct {
	// path uses forward slashes and keeps its case
	path     string
	lower    string
	base     string
	segments []string
}

func normalize(path string) target {
	slashed := filepath.ToSlash(path)
	lower := strings.ToLower(slashed)
	segments := strings.FieldsFunc(lower, func(r rune) bool { return r == '/' })

	var base string
	if n := len(segments); n > 0 {
		base = segments[n-1]
	}
	return target{path: slashed, lower: lower, base: base, segments: segments}
}

func (t target) hasSegment(s string) bool {
	for _, seg := range t.segments {
		if seg == s {
			return true
		}
	}
	return false
}

// extension returns what follows the last dot. A leading dot alone does not
// start an extension, so ".npmignore" has none.
func extension(base string) (string, bool) {
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return "", false
	}
	return base[i+1:], true
}

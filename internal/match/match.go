// Package match decides whether an entry's base name satisfies the search
// pattern. Exactly one mode is active per run: exact name equality or an
// anchored regular expression.
package match

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrEmptyPattern is returned when no pattern was supplied.
var ErrEmptyPattern = errors.New("pattern must not be empty")

// Matcher tests a base name. Implementations never look at the full path.
type Matcher interface {
	Match(name string) bool
	String() string
}

// PatternError reports a pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Exact matches names equal to the pattern, case-sensitive, no globbing.
type Exact struct {
	name string
}

// NewExact creates an exact-name matcher.
func NewExact(name string) Exact {
	return Exact{name: name}
}

func (m Exact) Match(name string) bool {
	return name == m.name
}

func (m Exact) String() string {
	return m.name
}

// Regex matches names against the whole of a regular expression.
type Regex struct {
	source string
	re     *regexp.Regexp
}

// NewRegex compiles pattern wrapped in start and end anchors, so "foo" does
// not match "foobar". The group keeps alternations inside the anchors.
// The bare pattern must compile on its own; otherwise unbalanced groups such
// as "a)|(b" could close the wrapper early.
func NewRegex(pattern string) (*Regex, error) {
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}

	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return &Regex{source: pattern, re: re}, nil
}

func (m *Regex) Match(name string) bool {
	return m.re.MatchString(name)
}

func (m *Regex) String() string {
	return m.source
}

// New selects the matching mode. Compilation happens here, before any
// traversal, so a bad pattern is always a startup error.
func New(pattern string, useRegex bool) (Matcher, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if useRegex {
		return NewRegex(pattern)
	}
	return NewExact(pattern), nil
}

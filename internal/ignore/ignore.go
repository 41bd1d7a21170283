// Package ignore loads .gitignore rules from a walk root so the classifier
// can exclude the entries they match.
package ignore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// FileName is the rules file looked up in the walk root.
const FileName = ".gitignore"

// Rules matches paths against the patterns of a single rules file.
// A nil *Rules or one loaded from a root without a rules file matches nothing.
type Rules struct {
	root    string
	matcher gitignore.IgnoreMatcher
}

// Load reads <root>/.gitignore. A missing file is not an error; one that
// exists but cannot be read is.
func Load(root string) (*Rules, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Rules{root: root}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return FromReader(root, bytes.NewReader(data)), nil
}

// FromReader builds rules from r with paths resolved against root.
func FromReader(root string, r io.Reader) *Rules {
	return &Rules{
		root:    root,
		matcher: gitignore.NewGitIgnoreFromReader(root, r),
	}
}

// Match reports whether path is excluded by the rules.
// path must be built from the same root the rules were loaded for.
func (r *Rules) Match(path string, isDir bool) bool {
	if r == nil || r.matcher == nil {
		return false
	}
	return r.matcher.Match(path, isDir)
}

// Empty reports whether the rules can never match.
func (r *Rules) Empty() bool {
	return r == nil || r.matcher == nil
}

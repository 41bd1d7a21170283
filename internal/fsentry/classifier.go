package fsentry

import (
	"io/fs"
	"os"
	"path/filepath"
)

// IgnoreRules is an optional path-based exclusion source, such as the rules
// of a .gitignore file.
type IgnoreRules interface {
	Match(path string, isDir bool) bool
}

// Options configures a Classifier.
type Options struct {
	// IncludeHidden keeps entries whose name starts with "."
	IncludeHidden bool
	// Reserved names are ignored regardless of IncludeHidden
	Reserved NameSet
	// Rules, when set, exclude every entry they match
	Rules IgnoreRules
}

// Classifier determines entry kinds and applies the ignore policy.
// Every decision depends only on the entry's own name and metadata plus the
// options, so the order in which entries are classified does not matter.
type Classifier struct {
	opts  Options
	lstat func(string) (fs.FileInfo, error)
	stat  func(string) (fs.FileInfo, error)
}

// NewClassifier creates a Classifier backed by the live filesystem.
func NewClassifier(opts Options) *Classifier {
	return &Classifier{
		opts:  opts,
		lstat: os.Lstat,
		stat:  os.Stat,
	}
}

// Classify returns the kind of path without following a final symlink.
func (c *Classifier) Classify(path string) (Kind, error) {
	info, err := c.lstat(path)
	if err != nil {
		return Other, err
	}
	return KindOf(info.Mode()), nil
}

// DisplayKind returns the kind of path after following symlinks.
// Only use it for entries that were already accepted; failures yield Other.
func (c *Classifier) DisplayKind(path string) Kind {
	info, err := c.stat(path)
	if err != nil {
		return Other
	}
	return KindOf(info.Mode())
}

// ClassifyEntry builds an Entry for a child of dir from its directory entry.
// The type bits come from the directory listing; a full lstat is only issued
// when the listing could not tell the type.
func (c *Classifier) ClassifyEntry(dir string, de fs.DirEntry) (Entry, error) {
	entry := Entry{
		Path: JoinPath(dir, de.Name()),
		Name: de.Name(),
	}

	mode := de.Type()
	if mode&fs.ModeIrregular != 0 {
		info, err := de.Info()
		if err != nil {
			return entry, err
		}
		mode = info.Mode()
	}

	entry.Kind = KindOf(mode)
	return entry, nil
}

// ShouldIgnore applies the ignore policy to an already classified entry.
// The root is exempt from the name-based rules but not from the kind rule.
func (c *Classifier) ShouldIgnore(e Entry, isRoot bool) bool {
	if e.Kind.Special() {
		return true
	}
	if isRoot {
		return false
	}
	if c.opts.Reserved.Contains(e.Name) {
		return true
	}
	if !c.opts.IncludeHidden && IsHidden(e.Name) {
		return true
	}
	if c.opts.Rules != nil && c.opts.Rules.Match(e.Path, e.IsDir()) {
		return true
	}
	return false
}

// ShouldIgnorePath decides whether a pending directory should be expanded.
// It is ignored when it is missing, is not a directory, or fails ShouldIgnore.
// The root is resolved through symlinks; any other path is not.
func (c *Classifier) ShouldIgnorePath(path string, isRoot bool) bool {
	var kind Kind
	if isRoot {
		kind = c.DisplayKind(path)
	} else {
		k, err := c.Classify(path)
		if err != nil {
			return true
		}
		kind = k
	}

	if kind != Directory {
		return true
	}

	return c.ShouldIgnore(Entry{Path: path, Name: filepath.Base(path), Kind: kind}, isRoot)
}

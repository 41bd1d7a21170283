package walker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harrison/scout/internal/fsentry"
	"github.com/harrison/scout/internal/match"
)

// Order selects how pending directories are taken from the queue.
type Order int

const (
	// BreadthFirst expands all directories at one depth before the next.
	BreadthFirst Order = iota
	// DepthFirst expands a directory's subtree before its next sibling.
	DepthFirst
)

func (o Order) String() string {
	if o == DepthFirst {
		return "dfs"
	}
	return "bfs"
}

// ParseOrder converts "bfs" or "dfs" to an Order. Empty means BreadthFirst.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bfs":
		return BreadthFirst, nil
	case "dfs":
		return DepthFirst, nil
	default:
		return BreadthFirst, fmt.Errorf("invalid order %q, must be one of: bfs, dfs", s)
	}
}

// ErrNoMatcher is returned when a search is started without a matcher.
var ErrNoMatcher = errors.New("search requires a matcher")

// Request is the per-run walk configuration. It is built once and never
// mutated during a walk.
type Request struct {
	Root          string
	Matcher       match.Matcher // required for searches, unused in tree mode
	IncludeHidden bool
	FilesOnly     bool // directories are traversed but neither scanned nor matched
	Short         bool // print base names instead of paths
	Order         Order
	Reserved      fsentry.NameSet     // names ignored unconditionally
	Rules         fsentry.IgnoreRules // optional, may be nil
}

// checkRoot verifies the root exists. Whether it is an expandable directory
// is left to the classifier, like any other pending directory.
func (r Request) checkRoot() error {
	if _, err := os.Stat(r.Root); err != nil {
		return &RootError{Path: r.Root, Err: err}
	}
	return nil
}

// Package walker drives a single-threaded walk over a directory tree.
//
// Pending directories live in an explicit queue instead of the call stack,
// so traversal depth is bounded by memory rather than stack size. The default
// order is breadth-first; a depth-first order is available with the same
// visit-exactly-once guarantees.
//
// For every expanded directory the engine reads its children once, applies
// the ignore policy, counts and matches what remains, and merges the
// directory's contribution into the running totals. Matches are written to
// the output as soon as they are found.
package walker

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/harrison/scout/internal/display"
	"github.com/harrison/scout/internal/fsentry"
	"github.com/harrison/scout/internal/models"
)

// Engine walks one tree for one Request. It is not safe for concurrent use.
type Engine struct {
	req        Request
	classifier *fsentry.Classifier
	presenter  *display.Presenter
	out        io.Writer
	onError    ErrorHandler
	readDir    func(string) ([]fs.DirEntry, error)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithOutput sets where matches and tree listings are written.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithPresenter sets how paths are rendered.
func WithPresenter(p *display.Presenter) Option {
	return func(e *Engine) {
		e.presenter = p
	}
}

// WithErrorHandler replaces the SwallowErrors policy.
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *Engine) {
		if h != nil {
			e.onError = h
		}
	}
}

// New creates an Engine. Without options output is discarded, paths are
// rendered without color and per-entry errors are swallowed.
func New(req Request, opts ...Option) *Engine {
	e := &Engine{
		req: req,
		classifier: fsentry.NewClassifier(fsentry.Options{
			IncludeHidden: req.IncludeHidden,
			Reserved:      req.Reserved,
			Rules:         req.Rules,
		}),
		presenter: display.NewPresenter(false),
		out:       io.Discard,
		onError:   SwallowErrors,
		readDir:   os.ReadDir,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// expandFunc handles the accepted children of one directory and returns that
// directory's contribution, excluding pushed subdirectories.
type expandFunc func(dir string, children []fsentry.Entry) models.SearchResults

// Run searches the tree and prints every matching entry.
// The only errors are startup errors: a missing root or a missing matcher.
func (e *Engine) Run() (models.SearchResults, error) {
	if e.req.Matcher == nil {
		return models.SearchResults{}, ErrNoMatcher
	}
	return e.walk(e.search)
}

// Tree prints a "path:" block for every visited directory listing its
// accepted children, each block followed by a blank line.
func (e *Engine) Tree() (models.SearchResults, error) {
	return e.walk(e.list)
}

func (e *Engine) walk(expand expandFunc) (models.SearchResults, error) {
	if err := e.req.checkRoot(); err != nil {
		return models.SearchResults{}, err
	}

	queue := newPendingQueue(e.req.Order)
	total := models.SearchResults{
		DirectoriesPushed: queue.pushAll([]string{e.req.Root}),
	}

	// The root is always the first directory popped.
	isRoot := true
	for queue.len() > 0 {
		dir, _ := queue.pop()
		root := isRoot
		isRoot = false

		if e.classifier.ShouldIgnorePath(dir, root) {
			continue
		}

		children, err := e.children(dir)
		if err != nil {
			e.onError(dir, err)
			continue
		}

		contribution := expand(dir, children)
		contribution.DirectoriesPushed += queue.pushAll(subdirectories(children))
		total = total.Merge(contribution)
	}

	return total, nil
}

// children reads dir once and returns the entries that survive the ignore
// policy, in enumeration order. A read failure discards the whole directory.
func (e *Engine) children(dir string) ([]fsentry.Entry, error) {
	entries, err := e.readDir(dir)
	if err != nil {
		return nil, err
	}

	children := make([]fsentry.Entry, 0, len(entries))
	for _, de := range entries {
		entry, err := e.classifier.ClassifyEntry(dir, de)
		if err != nil {
			e.onError(entry.Path, err)
			continue
		}
		if e.classifier.ShouldIgnore(entry, false) {
			continue
		}
		children = append(children, entry)
	}

	return children, nil
}

func (e *Engine) search(dir string, children []fsentry.Entry) models.SearchResults {
	var r models.SearchResults

	for _, c := range children {
		if e.req.FilesOnly && c.IsDir() {
			continue
		}

		r.ObjectsScanned++
		if !e.req.Matcher.Match(c.Name) {
			continue
		}

		fmt.Fprintln(e.out, e.presenter.Render(c.Path, c.Kind, e.req.Short))
		if c.IsDir() {
			r.DirectoriesMatched++
		} else {
			r.FilesMatched++
		}
	}

	return r
}

func (e *Engine) list(dir string, children []fsentry.Entry) models.SearchResults {
	var r models.SearchResults

	fmt.Fprintln(e.out, e.presenter.Header(dir))
	for _, c := range children {
		if e.req.FilesOnly && c.IsDir() {
			continue
		}
		r.ObjectsScanned++
		fmt.Fprintln(e.out, e.presenter.Render(c.Path, c.Kind, e.req.Short))
	}
	fmt.Fprintln(e.out)

	return r
}

func subdirectories(children []fsentry.Entry) []string {
	var dirs []string
	for _, c := range children {
		if c.IsDir() {
			dirs = append(dirs, c.Path)
		}
	}
	return dirs
}

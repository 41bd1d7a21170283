package walker

import (
	"fmt"

	"github.com/harrison/scout/internal/logger"
)

// ErrorHandler receives per-entry I/O failures: unreadable directories and
// entries whose metadata could not be fetched. The failing entry always
// contributes zero to the results whatever the handler does.
type ErrorHandler func(path string, err error)

// SwallowErrors is the default per-entry error policy. Failures are skipped
// silently and the walk continues with the next entry.
func SwallowErrors(path string, err error) {}

// LogErrors reports per-entry failures at debug level and otherwise behaves
// like SwallowErrors.
func LogErrors(l logger.Logger) ErrorHandler {
	return func(path string, err error) {
		l.LogDebug(fmt.Sprintf("skipping %s: %v", path, err))
	}
}

// RootError reports a walk root that cannot be resolved.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid path %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

package display

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harrison/scout/internal/fsentry"
)

// Presenter renders paths with one style for directories and the default
// style for every other kind.
type Presenter struct {
	dir *color.Color
}

// NewPresenter creates a Presenter. When colorize is false the output has no
// escape sequences, regardless of fatih/color's global detection.
func NewPresenter(colorize bool) *Presenter {
	dir := color.New(color.FgYellow, color.Bold)
	if colorize {
		dir.EnableColor()
	} else {
		dir.DisableColor()
	}
	return &Presenter{dir: dir}
}

// Render returns path styled for its kind. With short set only the base name
// is emitted; otherwise the path is kept exactly as given.
func (p *Presenter) Render(path string, kind fsentry.Kind, short bool) string {
	text := path
	if short {
		text = filepath.Base(path)
	}
	if kind == fsentry.Directory {
		return p.dir.Sprint(text)
	}
	return text
}

// Header renders the "path:" line that opens a directory block in tree mode.
func (p *Presenter) Header(path string) string {
	return p.Render(path, fsentry.Directory, false) + ":"
}

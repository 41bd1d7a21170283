package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out, in yellow when colorize is set.
func (w Warning) Display(out io.Writer, colorize bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		if len(w.Paths) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, path := range w.Paths {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, path))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	yellow := color.New(color.FgYellow)
	if colorize {
		yellow.EnableColor()
	} else {
		yellow.DisableColor()
	}
	fmt.Fprint(out, yellow.Sprint(b.String()))
}

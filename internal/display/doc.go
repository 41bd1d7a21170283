// Package display renders walk output for the terminal.
//
// It is the single place that decides how a path looks on screen. Callers
// never colorize paths themselves.
//
// # Paths
//
// A Presenter renders a path as styled text. Directories use a bold yellow
// style, everything else is printed as is:
//
//	p := display.NewPresenter(true)
//	fmt.Fprintln(os.Stdout, p.Render("./src", fsentry.Directory, false))
//	fmt.Fprintln(os.Stdout, p.Render("./src/main.go", fsentry.RegularFile, true)) // "main.go"
//
// Rendering is pure; writing to the output stream is the caller's job.
//
// # Color
//
// ResolveColor turns a ColorMode (auto, always, never) into a yes/no answer
// for a given writer. Auto enables color only for terminals and honors
// NO_COLOR.
//
// # Summary and warnings
//
// Summary formats the final search statistics line. Warning prints a yellow
// multi-line notice with an optional suggestion.
package display

// Package logging provides the installer's debug logger and its user-facing
// progress and error output.
package logging

import (
	"io"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

var isTerminal = term.IsTerminal

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && isTerminal(int(f.Fd()))
}

// ColorEnabled reports whether colored output should be written to w.
// NO_COLOR disables color regardless of the terminal.
func ColorEnabled(w io.Writer, getenv func(string) string) bool {
	if getenv != nil && getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(w)
}

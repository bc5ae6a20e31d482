// Package ui provides terminal detection and styles for human-facing output.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// UseColor reports whether output written to w should be coloured.
// forceOff wins; otherwise color needs a terminal and no NO_COLOR.
func UseColor(w io.Writer, forceOff bool) bool {
	if forceOff || DetectNoColor() {
		return false
	}
	return IsTTY(w)
}

// StylesFor returns DefaultStyles when color is enabled and NoColorStyles otherwise.
func StylesFor(color bool) Styles {
	if color {
		return DefaultStyles()
	}
	return NoColorStyles()
}

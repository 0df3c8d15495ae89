// Package termcolor decides whether CLI output should use ANSI color and
// applies it to status/log text. TTY detection is grounded on the sibling
// example package of the same name (golang.org/x/term.IsTerminal); the
// color vocabulary (one color per difference kind) is adapted from the
// teacher's internal/colors status-coloring functions.
package termcolor

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/snapfs-vcs/snapfs/internal/tree"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[91m"
	green  = "\033[92m"
	yellow = "\033[93m"
	cyan   = "\033[96m"
)

// IsTerminal reports whether the given file descriptor refers to a
// terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// ShouldColorize reports whether color output should be enabled for f,
// honoring NO_COLOR (https://no-color.org/) and FORCE_COLOR overrides.
func ShouldColorize(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return IsTerminal(f.Fd())
}

// Printer renders text with or without ANSI color depending on enabled.
type Printer struct {
	enabled bool
}

// NewPrinter returns a Printer gated by enabled, typically
// ShouldColorize(os.Stdout) combined with a user config toggle.
func NewPrinter(enabled bool) Printer {
	return Printer{enabled: enabled}
}

func (p Printer) wrap(code, text string) string {
	if !p.enabled {
		return text
	}
	return code + text + reset
}

// Bold renders text in bold.
func (p Printer) Bold(text string) string { return p.wrap(bold, text) }

// Dim renders text dimmed.
func (p Printer) Dim(text string) string { return p.wrap(dim, text) }

// Kind renders a DiffKind's single-letter prefix in its status color:
// green for Added, yellow for Updated, red for Removed.
func (p Printer) Kind(kind tree.DiffKind) string {
	switch kind {
	case tree.Added:
		return p.wrap(green, "A")
	case tree.Updated:
		return p.wrap(yellow, "U")
	case tree.Removed:
		return p.wrap(red, "D")
	default:
		return "?"
	}
}

// Difference formats one difference entry the way `snapfs status` prints
// a line: a colored one-letter kind prefix followed by the file's path.
func (p Printer) Difference(d tree.Difference) string {
	return fmt.Sprintf("%s  %s", p.Kind(d.Kind), d.File.Path)
}

// CommitHeader formats a log entry's headline in cyan/bold.
func (p Printer) CommitHeader(text string) string {
	return p.wrap(bold, p.wrap(cyan, text))
}

// Package output provides terminal output formatting utilities for the
// shiplog CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTTY reports whether the given file descriptor is attached to a terminal.
// Used to suppress the fetch spinner when output is piped.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Printer writes colored diagnostics to a writer. All diagnostics go to
// stderr by convention so the Markdown document on stdout stays clean.
type Printer struct {
	w     io.Writer
	plain bool
}

// NewPrinter creates a Printer. Pass plain=true to disable colors.
func NewPrinter(w io.Writer, plain bool) *Printer {
	if w == nil {
		w = os.Stderr
	}
	return &Printer{w: w, plain: plain}
}

// Warnf prints a yellow "Warning:" line.
func (p *Printer) Warnf(format string, args ...any) {
	label := "Warning:"
	if !p.plain {
		label = color.New(color.FgYellow, color.Bold).Sprint(label)
	}
	fmt.Fprintf(p.w, "%s %s\n", label, fmt.Sprintf(format, args...))
}

// Debugf prints a dim "[DEBUG]" line. Callers gate this on the debug flag.
func (p *Printer) Debugf(format string, args ...any) {
	line := fmt.Sprintf("[DEBUG] "+format, args...)
	if !p.plain {
		line = color.New(color.Faint).Sprint(line)
	}
	fmt.Fprintln(p.w, line)
}

// Successf prints a green checkmark line for completed actions.
func (p *Printer) Successf(format string, args ...any) {
	mark := "✓"
	if !p.plain {
		mark = color.New(color.FgGreen, color.Bold).Sprint(mark)
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

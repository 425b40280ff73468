// Package display renders user-facing warnings outside the main report.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Warner writes structural extraction warnings to stderr. Warnings are
// advisory: the run continues with the remaining documents.
type Warner struct {
	writer io.Writer
	color  bool
}

// NewWarner creates a Warner writing to stderr, with color enabled only
// when stderr is a terminal.
func NewWarner() *Warner {
	return &Warner{
		writer: os.Stderr,
		color:  isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// NewWarnerWithWriter creates a Warner for a specific writer, used by tests.
func NewWarnerWithWriter(w io.Writer, useColor bool) *Warner {
	return &Warner{writer: w, color: useColor}
}

// Warnf prints a formatted warning line.
func (w *Warner) Warnf(format string, args ...interface{}) {
	label := "warning:"
	if w.color {
		label = color.New(color.FgYellow, color.Bold).Sprint(label)
	}
	fmt.Fprintf(w.writer, "%s %s\n", label, fmt.Sprintf(format, args...))
}

// StdoutIsTerminal reports whether stdout is attached to a terminal, which
// gates color in the report renderer.
func StdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

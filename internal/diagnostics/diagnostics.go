// Package diagnostics writes build errors and notes to a terminal-aware
// writer, with ANSI color when the writer is an interactive terminal.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorRed   = "\x1b[31m"
	colorDim   = "\x1b[2m"
	colorReset = "\x1b[0m"
)

// Reporter formats diagnostics for one output stream.
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter creates a reporter for w. Color is enabled only when w is an
// interactive terminal and noColor is false.
func NewReporter(w io.Writer, noColor bool) *Reporter {
	color := false
	if f, ok := w.(*os.File); ok && !noColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: w, color: color}
}

// Report writes one error line, prefixed with the input it came from.
func (r *Reporter) Report(source string, err error) {
	if r.color {
		fmt.Fprintf(r.out, "%serror:%s %s: %v\n", colorRed, colorReset, source, err)
		return
	}
	fmt.Fprintf(r.out, "error: %s: %v\n", source, err)
}

// Notef writes an informational line, dimmed on terminals.
func (r *Reporter) Notef(format string, args ...any) {
	if r.color {
		fmt.Fprintf(r.out, colorDim+format+colorReset+"\n", args...)
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

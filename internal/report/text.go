package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/snipcheck/internal/compare"
	"github.com/harrison/snipcheck/internal/models"
)

// Renderer writes a report as human-readable text: one summary line per
// document, one block per failing snippet with its locator and an
// expected-vs-actual diff.
type Renderer struct {
	writer  io.Writer
	color   bool
	verbose bool
}

// NewRenderer creates a Renderer. Color output should only be enabled when
// the writer is a terminal.
func NewRenderer(w io.Writer, useColor, verbose bool) *Renderer {
	return &Renderer{writer: w, color: useColor, verbose: verbose}
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

// Render writes the full report.
func (r *Renderer) Render(rep *models.Report) {
	for _, warn := range rep.Structural {
		label := r.paint(color.New(color.FgYellow), "WARN")
		fmt.Fprintf(r.writer, "%s  %s:%d: %s\n", label, warn.Document, warn.Line, warn.Message)
	}

	for _, doc := range rep.Documents {
		r.renderDocument(doc)
	}

	r.renderTotals(rep)
}

func (r *Renderer) renderDocument(doc models.DocumentReport) {
	label := r.paint(color.New(color.FgGreen), "PASS")
	if doc.Summary.Failed > 0 {
		label = r.paint(color.New(color.FgRed), "FAIL")
	}

	fmt.Fprintf(r.writer, "%s  %s: %d passed, %d failed, %d skipped\n",
		label, doc.Path, doc.Summary.Passed, doc.Summary.Failed, doc.Summary.Skipped)

	for _, result := range doc.Results {
		switch result.Verdict {
		case models.VerdictFailed:
			r.renderFailure(doc.Path, result)
		case models.VerdictSkipped:
			if r.verbose {
				fmt.Fprintf(r.writer, "  skip %s (%s)\n",
					result.Snippet.Locator(doc.Path), result.Reason)
			}
		case models.VerdictPassed:
			if r.verbose {
				fmt.Fprintf(r.writer, "  pass %s (%s)\n",
					result.Snippet.Locator(doc.Path), result.Execution.Duration.Round(time.Millisecond))
			}
		}
	}
}

func (r *Renderer) renderFailure(docPath string, result models.SnippetResult) {
	locator := result.Snippet.Locator(docPath)
	fmt.Fprintf(r.writer, "  %s %s [%s]\n",
		r.paint(color.New(color.FgRed), "fail"), locator, result.Reason)

	switch result.Reason {
	case models.ReasonMismatch:
		if result.Snippet.Expected.IsError {
			r.indent("expected error: " + result.Snippet.Expected.Output)
			r.indent("snippet completed without fault")
			return
		}
		expected := compare.Normalize(result.Snippet.Expected.Output)
		actual := compare.Normalize(result.Execution.Output)
		r.indent(unifiedDiff(expected, actual))
	case models.ReasonFault:
		r.indent("fault: " + result.Execution.Fault)
		if result.Snippet.Expected != nil && result.Snippet.Expected.IsError {
			r.indent("expected error: " + result.Snippet.Expected.Output)
		}
	case models.ReasonTimeout:
		r.indent(result.Execution.Fault)
	}
}

func (r *Renderer) indent(block string) {
	for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
		fmt.Fprintf(r.writer, "       %s\n", line)
	}
}

func (r *Renderer) renderTotals(rep *models.Report) {
	totals := fmt.Sprintf("%d passed, %d failed, %d skipped",
		rep.Totals.Passed, rep.Totals.Failed, rep.Totals.Skipped)

	if r.color {
		if rep.Totals.Failed > 0 {
			totals = color.New(color.FgRed).Sprint(totals)
		} else {
			totals = color.New(color.FgGreen).Sprint(totals)
		}
	}

	fmt.Fprintf(r.writer, "\n%s (%d snippets in %d documents) in %s\n",
		totals, rep.Totals.Total(), len(rep.Documents), rep.Duration.Round(time.Millisecond))
}

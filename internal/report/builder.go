// Package report aggregates snippet verdicts into a per-run report and
// renders it as text or JSON.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/harrison/snipcheck/internal/models"
)

// Builder accumulates per-document results into a Report. Building is pure
// aggregation: no side effects beyond producing the report value. Documents
// must be added in discovery order; within a document, results arrive
// already in extraction order from the comparator.
type Builder struct {
	report *models.Report
	start  time.Time
}

// NewBuilder creates a Builder with a fresh run ID.
func NewBuilder() *Builder {
	now := time.Now()
	return &Builder{
		report: &models.Report{
			RunID:     uuid.New().String(),
			Generated: now,
		},
		start: now,
	}
}

// RunID returns the identifier assigned to this run.
func (b *Builder) RunID() string {
	return b.report.RunID
}

// AddDocument records one document's results. A document with zero snippets
// still gets an entry with zero counts.
func (b *Builder) AddDocument(doc *models.Document, results []models.SnippetResult) {
	entry := models.DocumentReport{
		Path:    doc.Path,
		Title:   doc.Title,
		Results: results,
	}
	for _, r := range results {
		entry.Summary.Count(r.Verdict)
	}

	b.report.Documents = append(b.report.Documents, entry)
	b.report.Totals.Add(entry.Summary)
}

// AddStructural records a document that failed extraction. Structural
// problems are run-level warnings, not snippet verdicts.
func (b *Builder) AddStructural(document string, line int, message string) {
	b.report.Structural = append(b.report.Structural, models.StructuralWarning{
		Document: document,
		Line:     line,
		Message:  message,
	})
}

// Build finalizes and returns the report.
func (b *Builder) Build() *models.Report {
	b.report.Duration = time.Since(b.start)
	return b.report
}

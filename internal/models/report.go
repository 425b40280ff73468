package models

import "time"

// Summary holds verdict counts.
type Summary struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Total returns the number of snippets covered by the summary.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Add accumulates another summary into this one.
func (s *Summary) Add(other Summary) {
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}

// Count increments the bucket matching the verdict.
func (s *Summary) Count(v Verdict) {
	switch v {
	case VerdictPassed:
		s.Passed++
	case VerdictFailed:
		s.Failed++
	case VerdictSkipped:
		s.Skipped++
	}
}

// DocumentReport aggregates the results of one document in extraction order.
// A document with zero snippets still gets a report entry with zero counts.
type DocumentReport struct {
	Path    string
	Title   string
	Results []SnippetResult
	Summary Summary
}

// StructuralWarning records a document that failed extraction. It is a
// run-level warning, not a snippet verdict: the rest of the run proceeds.
type StructuralWarning struct {
	Document string
	Line     int
	Message  string
}

// Report is the aggregate outcome of a single run. Built once, rendered,
// then discarded; nothing in it persists between runs.
type Report struct {
	RunID      string
	Generated  time.Time
	Duration   time.Duration
	Documents  []DocumentReport
	Structural []StructuralWarning
	Totals     Summary
}

// Failed reports whether any snippet with an expectation failed.
func (r *Report) Failed() bool {
	return r.Totals.Failed > 0
}

// HasStructuralErrors reports whether any document failed extraction.
func (r *Report) HasStructuralErrors() bool {
	return len(r.Structural) > 0
}

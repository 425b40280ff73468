package models

import "testing"

func TestSnippetLocator(t *testing.T) {
	tests := []struct {
		name      string
		startLine int
		want      string
	}{
		{name: "with line", startLine: 12, want: "docs/guide.md:12"},
		{name: "zero line falls back to path", startLine: 0, want: "docs/guide.md"},
		{name: "negative line falls back to path", startLine: -1, want: "docs/guide.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snippet{StartLine: tt.startLine}
			if got := s.Locator("docs/guide.md"); got != tt.want {
				t.Errorf("Locator() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryCountAndAdd(t *testing.T) {
	var s Summary
	s.Count(VerdictPassed)
	s.Count(VerdictPassed)
	s.Count(VerdictFailed)
	s.Count(VerdictSkipped)
	s.Count(Verdict("bogus")) // unknown verdicts are ignored

	if s.Passed != 2 || s.Failed != 1 || s.Skipped != 1 {
		t.Errorf("Count produced %+v", s)
	}
	if s.Total() != 4 {
		t.Errorf("Total() = %d, want 4", s.Total())
	}

	var agg Summary
	agg.Add(s)
	agg.Add(Summary{Passed: 1})
	if agg.Passed != 3 || agg.Total() != 5 {
		t.Errorf("Add produced %+v", agg)
	}
}

func TestReportFailed(t *testing.T) {
	r := &Report{}
	if r.Failed() {
		t.Error("empty report should not be failed")
	}

	r.Totals.Failed = 1
	if !r.Failed() {
		t.Error("report with failures should be failed")
	}
}

func TestReportHasStructuralErrors(t *testing.T) {
	r := &Report{}
	if r.HasStructuralErrors() {
		t.Error("empty report should have no structural errors")
	}

	r.Structural = append(r.Structural, StructuralWarning{Document: "a.md", Line: 3})
	if !r.HasStructuralErrors() {
		t.Error("structural warning not reported")
	}
}

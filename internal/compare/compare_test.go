package compare

import (
	"testing"

	"github.com/harrison/snipcheck/internal/models"
)

func expectation(output string) *models.Expectation {
	return &models.Expectation{Output: output}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text unchanged", in: "hello", want: "hello"},
		{name: "trailing newline dropped", in: "hello\n", want: "hello"},
		{name: "multiple trailing newlines dropped", in: "hello\n\n\n", want: "hello"},
		{name: "crlf converted", in: "a\r\nb\r\n", want: "a\nb"},
		{name: "trailing spaces stripped per line", in: "a  \nb\t\n", want: "a\nb"},
		{name: "interior blank lines kept", in: "a\n\nb", want: "a\n\nb"},
		{name: "empty input", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestJudgeVerdicts(t *testing.T) {
	tests := []struct {
		name        string
		snippet     models.Snippet
		execution   models.ExecutionResult
		wantVerdict models.Verdict
		wantReason  string
	}{
		{
			name:        "exact match passes",
			snippet:     models.Snippet{Expected: expectation("Hello, World!")},
			execution:   models.ExecutionResult{Output: "Hello, World!"},
			wantVerdict: models.VerdictPassed,
		},
		{
			name:        "trailing newline difference still passes",
			snippet:     models.Snippet{Expected: expectation("Hello, World!")},
			execution:   models.ExecutionResult{Output: "Hello, World!\n"},
			wantVerdict: models.VerdictPassed,
		},
		{
			name:        "mismatch fails",
			snippet:     models.Snippet{Expected: expectation("4")},
			execution:   models.ExecutionResult{Output: "5\n"},
			wantVerdict: models.VerdictFailed,
			wantReason:  models.ReasonMismatch,
		},
		{
			name:        "no expectation skips",
			snippet:     models.Snippet{},
			execution:   models.ExecutionResult{Output: "anything"},
			wantVerdict: models.VerdictSkipped,
			wantReason:  models.ReasonNoExpectation,
		},
		{
			name:        "no expectation skips even on fault",
			snippet:     models.Snippet{},
			execution:   models.ExecutionResult{Fault: "index out of range"},
			wantVerdict: models.VerdictSkipped,
			wantReason:  models.ReasonNoExpectation,
		},
		{
			name:        "timeout fails",
			snippet:     models.Snippet{Expected: expectation("done")},
			execution:   models.ExecutionResult{TimedOut: true, Fault: "timeout after 5s"},
			wantVerdict: models.VerdictFailed,
			wantReason:  models.ReasonTimeout,
		},
		{
			name:        "unexpected fault fails",
			snippet:     models.Snippet{Expected: expectation("ok")},
			execution:   models.ExecutionResult{Fault: "nil pointer dereference"},
			wantVerdict: models.VerdictFailed,
			wantReason:  models.ReasonFault,
		},
		{
			name: "expected fault passes on matching message",
			snippet: models.Snippet{Expected: &models.Expectation{
				Output:  "index out of range",
				IsError: true,
			}},
			execution:   models.ExecutionResult{Fault: "index out of range"},
			wantVerdict: models.VerdictPassed,
		},
		{
			name: "expected fault fails on different message",
			snippet: models.Snippet{Expected: &models.Expectation{
				Output:  "index out of range",
				IsError: true,
			}},
			execution:   models.ExecutionResult{Fault: "division by zero"},
			wantVerdict: models.VerdictFailed,
			wantReason:  models.ReasonFault,
		},
		{
			name: "expected fault fails when snippet runs cleanly",
			snippet: models.Snippet{Expected: &models.Expectation{
				Output:  "index out of range",
				IsError: true,
			}},
			execution:   models.ExecutionResult{Output: "5\n"},
			wantVerdict: models.VerdictFailed,
			wantReason:  models.ReasonMismatch,
		},
		{
			name:        "cancelled skips regardless of expectation",
			snippet:     models.Snippet{Expected: expectation("4")},
			execution:   models.ExecutionResult{Cancelled: true},
			wantVerdict: models.VerdictSkipped,
			wantReason:  models.ReasonDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Judge(tt.snippet, tt.execution)
			if got.Verdict != tt.wantVerdict {
				t.Errorf("verdict = %q, want %q", got.Verdict, tt.wantVerdict)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestJudgeAllPreservesOrder(t *testing.T) {
	doc := &models.Document{
		Path: "docs/guide.md",
		Snippets: []models.Snippet{
			{Index: 0, Expected: expectation("a")},
			{Index: 1},
			{Index: 2, Expected: expectation("c")},
		},
	}
	executions := []models.ExecutionResult{
		{Output: "a\n"},
		{Output: "ignored"},
		{Output: "wrong\n"},
	}

	results := JudgeAll(doc, executions)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Verdict != models.VerdictPassed {
		t.Errorf("results[0] = %q, want passed", results[0].Verdict)
	}
	if results[1].Verdict != models.VerdictSkipped {
		t.Errorf("results[1] = %q, want skipped", results[1].Verdict)
	}
	if results[2].Verdict != models.VerdictFailed {
		t.Errorf("results[2] = %q, want failed", results[2].Verdict)
	}

	for i, r := range results {
		if r.Snippet.Index != i {
			t.Errorf("results[%d] carries snippet index %d", i, r.Snippet.Index)
		}
	}
}

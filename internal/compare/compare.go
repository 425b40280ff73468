// Package compare classifies snippet execution outcomes against their
// declared expectations.
package compare

import (
	"strings"

	"github.com/harrison/snipcheck/internal/models"
)

// Normalize prepares text for comparison: line endings become LF, trailing
// whitespace is stripped per line, and trailing blank lines are dropped.
// Comparison after normalization is exact; there is no fuzzy matching.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Judge produces the verdict for one snippet. The rules, in order:
//
//   - execution cancelled by the run deadline: skipped (deadline)
//   - no declared expectation: skipped (no-expectation), regardless of how
//     execution went — documentation-only examples are not assertions
//   - per-snippet timeout: failed (timeout)
//   - evaluation fault: passed when the expectation names the fault,
//     otherwise failed (fault)
//   - otherwise exact comparison of normalized output: passed or failed
//     (mismatch)
func Judge(snippet models.Snippet, execution models.ExecutionResult) models.SnippetResult {
	result := models.SnippetResult{
		Snippet:   snippet,
		Execution: execution,
	}

	switch {
	case execution.Cancelled:
		result.Verdict = models.VerdictSkipped
		result.Reason = models.ReasonDeadline

	case snippet.Expected == nil:
		result.Verdict = models.VerdictSkipped
		result.Reason = models.ReasonNoExpectation

	case execution.TimedOut:
		result.Verdict = models.VerdictFailed
		result.Reason = models.ReasonTimeout

	case execution.Fault != "":
		if snippet.Expected.IsError && Normalize(execution.Fault) == Normalize(snippet.Expected.Output) {
			result.Verdict = models.VerdictPassed
		} else {
			result.Verdict = models.VerdictFailed
			result.Reason = models.ReasonFault
		}

	case snippet.Expected.IsError:
		// Expected a fault but the snippet ran cleanly
		result.Verdict = models.VerdictFailed
		result.Reason = models.ReasonMismatch

	case Normalize(execution.Output) == Normalize(snippet.Expected.Output):
		result.Verdict = models.VerdictPassed

	default:
		result.Verdict = models.VerdictFailed
		result.Reason = models.ReasonMismatch
	}

	return result
}

// JudgeAll applies Judge to a document's execution results, preserving
// extraction order. The executions slice must be indexed by snippet Index,
// as produced by the runner pool.
func JudgeAll(doc *models.Document, executions []models.ExecutionResult) []models.SnippetResult {
	results := make([]models.SnippetResult, 0, len(doc.Snippets))
	for _, snippet := range doc.Snippets {
		var execution models.ExecutionResult
		if snippet.Index < len(executions) {
			execution = executions[snippet.Index]
		}
		results = append(results, Judge(snippet, execution))
	}
	return results
}

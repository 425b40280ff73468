package models

import "time"

// Verdict classifies a snippet's checked outcome.
type Verdict string

const (
	VerdictPassed  Verdict = "passed"
	VerdictFailed  Verdict = "failed"
	VerdictSkipped Verdict = "skipped"
)

// Reasons qualifying a verdict. Passed verdicts carry no reason.
const (
	ReasonMismatch      = "mismatch"       // output differed from expectation
	ReasonTimeout       = "timeout"        // per-snippet execution budget exceeded
	ReasonFault         = "fault"          // snippet raised during evaluation
	ReasonNoExpectation = "no-expectation" // documentation-only example
	ReasonDeadline      = "deadline"       // global run deadline hit before execution
)

// ExecutionResult is the captured outcome of evaluating a single snippet.
// One is created per snippet per run and discarded after reporting.
type ExecutionResult struct {
	// Output is the text the snippet wrote to stdout
	Output string

	// Fault is the evaluation error message, empty on a clean run
	Fault string

	// TimedOut is set when the per-snippet timeout expired
	TimedOut bool

	// Cancelled is set when the global run deadline cancelled the snippet
	// before it completed
	Cancelled bool

	// Duration is the wall-clock evaluation time
	Duration time.Duration
}

// SnippetResult pairs a snippet with its execution outcome and verdict.
type SnippetResult struct {
	Snippet   Snippet
	Execution ExecutionResult
	Verdict   Verdict
	Reason    string
}

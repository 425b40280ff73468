package report

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders an expected-vs-actual diff for a failed comparison.
// Inputs are expected to be pre-normalized by the comparator.
func unifiedDiff(expected, actual string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		// SplitLines output cannot fail to diff; keep the report usable
		return ""
	}
	return text
}

package models

import "strconv"

// Document represents one tutorial file and the snippets extracted from it.
// A Document is immutable once extraction completes.
type Document struct {
	// Path is the file path the document was loaded from
	Path string

	// Title is the frontmatter title, the first H1 heading, or the basename
	Title string

	// Snippets holds the runnable snippets in extraction order
	Snippets []Snippet
}

// Snippet is one fenced code block extracted from a Document.
type Snippet struct {
	// Index is the snippet's position within its document (0-based,
	// counting runnable snippets only)
	Index int

	// Language is the fence info-string language tag (e.g. "go")
	Language string

	// Source is the snippet body with any expectation comment stripped
	Source string

	// StartLine and EndLine locate the fenced block in the document,
	// including the fence lines themselves (1-based)
	StartLine int
	EndLine   int

	// Expected is the author-declared expectation, nil when the snippet
	// carries none
	Expected *Expectation
}

// Locator returns a human-readable "path:line" reference for the snippet.
// The document path is supplied by the caller because snippets do not hold
// a back-reference to their document.
func (s Snippet) Locator(docPath string) string {
	if s.StartLine <= 0 {
		return docPath
	}
	return docPath + ":" + strconv.Itoa(s.StartLine)
}

// Expectation is the declared expected outcome for a snippet.
type Expectation struct {
	// Output is the expected text. For IsError expectations this is the
	// expected evaluation error message rather than stdout.
	Output string

	// IsError marks the snippet as expected to fail evaluation
	IsError bool

	// Line is the line the expectation was declared on (1-based)
	Line int
}

package parser

import (
	"errors"
	"fmt"
)

// StructuralError reports malformed snippet fencing in a document. It fails
// extraction of that document only; callers continue with the remaining
// documents and surface the error as a run-level warning.
type StructuralError struct {
	Document string // path of the document that failed extraction
	Line     int    // opening line of the offending fence (1-based)
	Message  string // human-readable description
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Document, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Document, e.Message)
}

// NewStructuralError creates a StructuralError for the given document and line.
func NewStructuralError(document string, line int, message string) *StructuralError {
	return &StructuralError{Document: document, Line: line, Message: message}
}

// IsStructuralError checks if the error is or wraps a StructuralError.
func IsStructuralError(err error) bool {
	if err == nil {
		return false
	}
	var se *StructuralError
	return errors.As(err, &se)
}

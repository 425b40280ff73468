// Package parser extracts runnable snippets and their declared expectations
// from markdown tutorial documents.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies the document format based on file extension.
type Format int

const (
	FormatUnknown Format = iota
	FormatMarkdown
)

// DetectFormat determines the document format from a filename.
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// ParseFile reads and extracts a single document. Unsupported extensions and
// unreadable files are reported as errors; malformed fencing surfaces as a
// StructuralError from the extractor.
func (e *Extractor) ParseFile(path string) (*Extraction, error) {
	if DetectFormat(path) != FormatMarkdown {
		return nil, fmt.Errorf("unsupported document format: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return e.Extract(path, content)
}

package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/harrison/snipcheck/internal/models"
)

// Extractor turns a markdown document into an ordered sequence of runnable
// snippets. Blocks are eligible only when fenced and tagged with the
// runnable language; untagged blocks, other languages, and blocks carrying
// the norun modifier are illustrative-only and excluded.
type Extractor struct {
	markdown goldmark.Markdown

	// Language is the fence tag that marks a block runnable
	Language string
}

// outputTag marks a fenced block holding the expected output of the
// runnable block immediately above it.
const outputTag = "output"

// NewExtractor creates an Extractor for Go-tagged snippets.
func NewExtractor() *Extractor {
	return &Extractor{
		markdown: goldmark.New(),
		Language: "go",
	}
}

// Extraction is the result of extracting one document.
type Extraction struct {
	Document *models.Document
	Meta     *Meta
}

// fencedBlock is an intermediate record for every fenced block in a
// document, runnable or not, in source order.
type fencedBlock struct {
	language  string
	modifiers []string
	source    string
	startLine int // opening fence line (1-based, file coordinates)
	endLine   int // closing fence line
}

// Extract parses raw document content and produces the document's snippets
// in source order. Malformed fencing yields a StructuralError identifying
// the document and the opening fence line; the caller is expected to keep
// going with its remaining documents.
func (e *Extractor) Extract(path string, content []byte) (*Extraction, error) {
	body, fm, fmLines := extractFrontmatter(content)

	meta, err := parseMeta(fm)
	if err != nil {
		return nil, NewStructuralError(path, 1, err.Error())
	}

	if err := validateFences(path, body, fmLines); err != nil {
		return nil, err
	}

	doc := e.markdown.Parser().Parse(text.NewReader(body))
	index := newLineIndex(body)

	var blocks []fencedBlock
	var title string

	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = headingText(node, body)
			}
		case *ast.FencedCodeBlock:
			if node.Info == nil {
				// No info string means no language tag: illustrative-only
				return ast.WalkContinue, nil
			}
			block := e.collectBlock(node, body, index, fmLines)
			blocks = append(blocks, block)
		}

		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", path, walkErr)
	}

	snippets := e.assembleSnippets(blocks, body, fmLines, meta)

	if meta.Title != "" {
		title = meta.Title
	}
	if title == "" {
		title = filepath.Base(path)
	}

	return &Extraction{
		Document: &models.Document{
			Path:     path,
			Title:    title,
			Snippets: snippets,
		},
		Meta: meta,
	}, nil
}

// collectBlock converts a goldmark fenced code block into a fencedBlock with
// file-coordinate line numbers.
func (e *Extractor) collectBlock(node *ast.FencedCodeBlock, body []byte, index *lineIndex, fmLines int) fencedBlock {
	info := string(node.Info.Segment.Value(body))
	fields := strings.Fields(info)

	var lang string
	var mods []string
	if len(fields) > 0 {
		lang = fields[0]
		mods = fields[1:]
	}

	// The info string sits on the opening fence line
	startLine := index.lineOf(node.Info.Segment.Start) + fmLines

	var src bytes.Buffer
	lines := node.Lines()
	endLine := startLine + 1
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		src.Write(seg.Value(body))
		if i == lines.Len()-1 {
			endLine = index.lineOf(seg.Stop-1) + fmLines + 1
		}
	}

	return fencedBlock{
		language:  lang,
		modifiers: mods,
		source:    src.String(),
		startLine: startLine,
		endLine:   endLine,
	}
}

// assembleSnippets filters runnable blocks, recovers expectations, and
// attaches adjacent output blocks.
func (e *Extractor) assembleSnippets(blocks []fencedBlock, body []byte, fmLines int, meta *Meta) []models.Snippet {
	bodyLines := strings.Split(string(body), "\n")

	snippets := make([]models.Snippet, 0, len(blocks))
	for i, block := range blocks {
		if meta.Skip || !e.runnable(block) {
			continue
		}

		code, exp := splitExpectation(block.source, block.startLine+1)

		if exp == nil {
			if out, ok := adjacentOutput(blocks, i, bodyLines, fmLines); ok {
				exp = out
			}
		}

		snippets = append(snippets, models.Snippet{
			Index:     len(snippets),
			Language:  block.language,
			Source:    code,
			StartLine: block.startLine,
			EndLine:   block.endLine,
			Expected:  exp,
		})
	}

	return snippets
}

// runnable reports whether a block should be executed.
func (e *Extractor) runnable(block fencedBlock) bool {
	if block.language != e.Language {
		return false
	}
	for _, mod := range block.modifiers {
		if mod == "norun" || mod == "skip" {
			return false
		}
	}
	return true
}

// adjacentOutput looks for an output-tagged block directly below blocks[i],
// separated by blank lines only, and converts it into an expectation.
func adjacentOutput(blocks []fencedBlock, i int, bodyLines []string, fmLines int) (*models.Expectation, bool) {
	if i+1 >= len(blocks) {
		return nil, false
	}
	next := blocks[i+1]
	if next.language != outputTag {
		return nil, false
	}

	// Only whitespace may sit between the closing fence and the output
	// block's opening fence
	for line := blocks[i].endLine + 1; line < next.startLine; line++ {
		idx := line - fmLines - 1
		if idx < 0 || idx >= len(bodyLines) {
			return nil, false
		}
		if strings.TrimSpace(bodyLines[idx]) != "" {
			return nil, false
		}
	}

	return &models.Expectation{
		Output: next.source,
		Line:   next.startLine,
	}, true
}

var expectationMarker = regexp.MustCompile(`^//\s*(Output|Error):\s*(.*)$`)

// splitExpectation recovers a trailing expectation comment from snippet
// source. The convention follows Go testable examples: the last comment
// block of the snippet starts with "// Output:" (or "// Error:" for an
// expected evaluation failure) and each following comment line continues
// the expected text. Absence of the convention is not an error; the snippet
// simply carries no expectation.
func splitExpectation(source string, bodyStartLine int) (string, *models.Expectation) {
	lines := strings.Split(source, "\n")

	// Walk backwards over trailing blank lines to the last comment block
	end := len(lines) - 1
	for end >= 0 && strings.TrimSpace(lines[end]) == "" {
		end--
	}

	// The comment block is the contiguous run of // lines ending at end
	start := end
	for start >= 0 && strings.HasPrefix(strings.TrimSpace(lines[start]), "//") {
		start--
	}
	start++

	if start > end {
		return source, nil
	}

	marker := expectationMarker.FindStringSubmatch(strings.TrimSpace(lines[start]))
	if marker == nil {
		return source, nil
	}

	var expected []string
	if marker[2] != "" {
		expected = append(expected, marker[2])
	}
	for _, line := range lines[start+1 : end+1] {
		text := strings.TrimSpace(line)
		text = strings.TrimPrefix(text, "//")
		text = strings.TrimPrefix(text, " ")
		expected = append(expected, text)
	}

	code := strings.Join(lines[:start], "\n")
	if code != "" && !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	return code, &models.Expectation{
		Output:  strings.Join(expected, "\n"),
		IsError: marker[1] == "Error",
		Line:    bodyStartLine + start,
	}
}

// headingText extracts the plain text of a heading node.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(buf.String())
}

// lineIndex maps byte offsets in a document to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(content []byte) *lineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (li *lineIndex) lineOf(offset int) int {
	if offset < 0 {
		return 1
	}
	return sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
}

var fenceOpen = regexp.MustCompile("^(`{3,}|~{3,})")

// validateFences scans the document line by line and rejects unterminated
// fenced blocks. Goldmark silently treats an unterminated fence as running
// to end of file, so structural problems have to be caught before the AST
// walk; the scan mirrors the code-block state tracking used for section
// splitting elsewhere in this package's lineage.
func validateFences(path string, body []byte, fmLines int) error {
	lines := strings.Split(string(body), "\n")

	inFence := false
	var fenceChar byte
	var fenceLen int
	var openLine int

	for i, raw := range lines {
		line := strings.TrimLeft(raw, " ")

		if !inFence {
			if m := fenceOpen.FindString(line); m != "" {
				inFence = true
				fenceChar = m[0]
				fenceLen = len(m)
				openLine = i + 1 + fmLines
			}
			continue
		}

		// A fence closes on a line of at least as many of the same
		// marker characters and nothing else
		trimmed := strings.TrimRight(line, " ")
		if len(trimmed) >= fenceLen && strings.Trim(trimmed, string(fenceChar)) == "" && trimmed[0] == fenceChar {
			inFence = false
		}
	}

	if inFence {
		return NewStructuralError(path, openLine, "unterminated fenced code block")
	}
	return nil
}

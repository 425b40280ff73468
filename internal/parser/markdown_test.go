package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, content string) *Extraction {
	t.Helper()
	ex, err := NewExtractor().Extract("docs/guide.md", []byte(content))
	require.NoError(t, err)
	return ex
}

func TestExtractRunnableSnippet(t *testing.T) {
	content := "# Variables\n" +
		"\n" +
		"Assign with `:=`:\n" +
		"\n" +
		"```go\n" +
		"x := 5\n" +
		"fmt.Println(x)\n" +
		"// Output: 5\n" +
		"```\n"

	ex := extract(t, content)
	doc := ex.Document

	assert.Equal(t, "Variables", doc.Title)
	require.Len(t, doc.Snippets, 1)

	sn := doc.Snippets[0]
	assert.Equal(t, 0, sn.Index)
	assert.Equal(t, "go", sn.Language)
	assert.Equal(t, "x := 5\nfmt.Println(x)\n", sn.Source)
	assert.Equal(t, 5, sn.StartLine)
	assert.Equal(t, 9, sn.EndLine)

	require.NotNil(t, sn.Expected)
	assert.Equal(t, "5", sn.Expected.Output)
	assert.False(t, sn.Expected.IsError)
	assert.Equal(t, 8, sn.Expected.Line)
}

func TestExtractSkipsNonRunnableBlocks(t *testing.T) {
	content := "# Guide\n" +
		"\n" +
		"```\n" +
		"no language tag\n" +
		"```\n" +
		"\n" +
		"```text\n" +
		"prose sample\n" +
		"```\n" +
		"\n" +
		"```go norun\n" +
		"fmt.Println(\"illustrative only\")\n" +
		"```\n" +
		"\n" +
		"```go\n" +
		"fmt.Println(\"runnable\")\n" +
		"```\n"

	ex := extract(t, content)
	require.Len(t, ex.Document.Snippets, 1)
	assert.Contains(t, ex.Document.Snippets[0].Source, "runnable")
}

func TestExtractMultilineOutputComment(t *testing.T) {
	content := "```go\n" +
		"fmt.Println(\"a\")\n" +
		"fmt.Println(\"b\")\n" +
		"// Output:\n" +
		"// a\n" +
		"// b\n" +
		"```\n"

	ex := extract(t, content)
	require.Len(t, ex.Document.Snippets, 1)

	sn := ex.Document.Snippets[0]
	require.NotNil(t, sn.Expected)
	assert.Equal(t, "a\nb", sn.Expected.Output)
	assert.NotContains(t, sn.Source, "Output")
}

func TestExtractErrorExpectation(t *testing.T) {
	content := "```go\n" +
		"var xs []int\n" +
		"fmt.Println(xs[3])\n" +
		"// Error: index out of range\n" +
		"```\n"

	ex := extract(t, content)
	require.Len(t, ex.Document.Snippets, 1)

	sn := ex.Document.Snippets[0]
	require.NotNil(t, sn.Expected)
	assert.True(t, sn.Expected.IsError)
	assert.Equal(t, "index out of range", sn.Expected.Output)
}

func TestExtractAdjacentOutputBlock(t *testing.T) {
	content := "```go\n" +
		"fmt.Println(\"Hello, World!\")\n" +
		"```\n" +
		"\n" +
		"```output\n" +
		"Hello, World!\n" +
		"```\n"

	ex := extract(t, content)
	require.Len(t, ex.Document.Snippets, 1)

	sn := ex.Document.Snippets[0]
	require.NotNil(t, sn.Expected)
	assert.Equal(t, "Hello, World!\n", sn.Expected.Output)
}

func TestAdjacentOutputBlockRequiresBlankSeparation(t *testing.T) {
	content := "```go\n" +
		"fmt.Println(1)\n" +
		"```\n" +
		"\n" +
		"Some prose in between.\n" +
		"\n" +
		"```output\n" +
		"1\n" +
		"```\n"

	ex := extract(t, content)
	require.Len(t, ex.Document.Snippets, 1)
	assert.Nil(t, ex.Document.Snippets[0].Expected)
}

func TestExtractNoExpectation(t *testing.T) {
	content := "```go\n" +
		"fmt.Println(time.Now())\n" +
		"```\n"

	ex := extract(t, content)
	require.Len(t, ex.Document.Snippets, 1)
	assert.Nil(t, ex.Document.Snippets[0].Expected)
}

func TestExtractZeroSnippets(t *testing.T) {
	ex := extract(t, "# Prose Only\n\nNothing to run here.\n")
	assert.Empty(t, ex.Document.Snippets)
	assert.Equal(t, "Prose Only", ex.Document.Title)
}

func TestExtractUnterminatedFence(t *testing.T) {
	content := "# Broken\n" +
		"\n" +
		"```go\n" +
		"fmt.Println(1)\n"

	_, err := NewExtractor().Extract("docs/broken.md", []byte(content))
	require.Error(t, err)
	assert.True(t, IsStructuralError(err))

	se := err.(*StructuralError)
	assert.Equal(t, "docs/broken.md", se.Document)
	assert.Equal(t, 3, se.Line)
}

func TestExtractFrontmatter(t *testing.T) {
	content := "---\n" +
		"title: Custom Title\n" +
		"timeout: 2s\n" +
		"---\n" +
		"# Heading\n" +
		"\n" +
		"```go\n" +
		"fmt.Println(1)\n" +
		"// Output: 1\n" +
		"```\n"

	ex := extract(t, content)
	assert.Equal(t, "Custom Title", ex.Document.Title)

	timeout, err := ex.Meta.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, "2s", timeout.String())

	require.Len(t, ex.Document.Snippets, 1)
	// Frontmatter lines count toward file coordinates
	assert.Equal(t, 7, ex.Document.Snippets[0].StartLine)
}

func TestExtractFrontmatterSkip(t *testing.T) {
	content := "---\n" +
		"skip: true\n" +
		"---\n" +
		"```go\n" +
		"fmt.Println(1)\n" +
		"```\n"

	ex := extract(t, content)
	assert.Empty(t, ex.Document.Snippets)
}

func TestExtractTitleFallsBackToBasename(t *testing.T) {
	ex := extract(t, "no heading here\n")
	assert.Equal(t, "guide.md", ex.Document.Title)
}

func TestSnippetIndexesAreSequential(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# Many\n")
	for i := 0; i < 3; i++ {
		sb.WriteString("\n```go\nfmt.Println(1)\n```\n")
	}

	ex := extract(t, sb.String())
	require.Len(t, ex.Document.Snippets, 3)
	for i, sn := range ex.Document.Snippets {
		assert.Equal(t, i, sn.Index)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Format
	}{
		{name: "markdown .md", filename: "guide.md", want: FormatMarkdown},
		{name: "markdown .markdown", filename: "guide.markdown", want: FormatMarkdown},
		{name: "uppercase extension", filename: "GUIDE.MD", want: FormatMarkdown},
		{name: "text file", filename: "notes.txt", want: FormatUnknown},
		{name: "no extension", filename: "README", want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.filename))
		})
	}
}

func TestSplitExpectationLeavesPlainCommentsAlone(t *testing.T) {
	src := "x := 1\n// just a comment\n"
	code, exp := splitExpectation(src, 1)
	assert.Nil(t, exp)
	assert.Equal(t, src, code)
}

func TestValidateFencesAcceptsTildes(t *testing.T) {
	content := "~~~go\nfmt.Println(1)\n~~~\n"
	ex := extract(t, content)
	require.Len(t, ex.Document.Snippets, 1)
}

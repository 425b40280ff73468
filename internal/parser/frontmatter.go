package parser

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Meta holds per-document settings declared in YAML frontmatter. All fields
// are optional; the zero value leaves run configuration untouched.
type Meta struct {
	// Title overrides the document title derived from headings
	Title string `yaml:"title"`

	// Skip marks every snippet in the document illustrative-only
	Skip bool `yaml:"skip"`

	// Timeout overrides the per-snippet execution timeout for this
	// document (e.g. "2s", "500ms")
	Timeout string `yaml:"timeout"`
}

// TimeoutDuration parses the timeout override. Returns 0 when unset.
func (m *Meta) TimeoutDuration() (time.Duration, error) {
	if m == nil || m.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(m.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid frontmatter timeout %q: %w", m.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("frontmatter timeout must be >= 0, got %v", d)
	}
	return d, nil
}

// extractFrontmatter splits YAML frontmatter from markdown content.
// Returns the body, the frontmatter bytes (nil when absent), and the number
// of lines consumed so snippet locators can be mapped back to file lines.
func extractFrontmatter(content []byte) (body []byte, frontmatter []byte, consumed int) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) < 3 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, nil, 0
	}

	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fm := bytes.Join(lines[1:i], []byte("\n"))
			rest := bytes.Join(lines[i+1:], []byte("\n"))
			return rest, fm, i + 1
		}
	}

	// No closing delimiter: treat the whole file as body
	return content, nil, 0
}

// parseMeta unmarshals frontmatter into Meta. A nil frontmatter yields an
// empty Meta without error.
func parseMeta(frontmatter []byte) (*Meta, error) {
	meta := &Meta{}
	if frontmatter == nil {
		return meta, nil
	}
	if err := yaml.Unmarshal(frontmatter, meta); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return meta, nil
}

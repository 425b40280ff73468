// Package runner evaluates extracted snippets in isolated interpreter
// contexts and captures their output.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/harrison/snipcheck/internal/models"
)

// Engine evaluates a single snippet and returns its captured stdout.
// Implementations must not share any mutable state between calls so that
// snippet results stay order-independent.
type Engine interface {
	Run(ctx context.Context, snippet models.Snippet) (string, error)
}

// YaegiEngine runs Go snippets through the yaegi interpreter. A fresh
// interpreter is created per snippet, which gives every snippet a clean
// namespace and keeps one snippet's bindings invisible to the next.
type YaegiEngine struct{}

// NewYaegiEngine creates a YaegiEngine.
func NewYaegiEngine() *YaegiEngine {
	return &YaegiEngine{}
}

var packageClause = regexp.MustCompile(`(?m)^\s*package\s+main\b`)

// fragmentPrelude imports the packages tutorial fragments lean on, so that
// a bare fmt.Println line runs without boilerplate. Full programs declare
// their own imports and skip the prelude.
var fragmentPrelude = []string{
	`import "fmt"`,
	`import "strings"`,
	`import "strconv"`,
	`import "math"`,
}

// Run evaluates the snippet REPL-style and returns whatever it wrote to
// stdout. Evaluation faults come back as the error; partial output written
// before the fault is still returned. Cancellation of ctx interrupts the
// interpreter.
func (e *YaegiEngine) Run(ctx context.Context, snippet models.Snippet) (string, error) {
	var stdout, stderr bytes.Buffer

	i := interp.New(interp.Options{Stdout: &stdout, Stderr: &stderr})
	if err := i.Use(stdlib.Symbols); err != nil {
		return "", fmt.Errorf("failed to load interpreter stdlib: %w", err)
	}

	if packageClause.MatchString(snippet.Source) {
		if _, err := i.EvalWithContext(ctx, snippet.Source); err != nil {
			return stdout.String(), err
		}
		if _, err := i.EvalWithContext(ctx, "main.main()"); err != nil {
			return stdout.String(), err
		}
		return stdout.String(), nil
	}

	for _, stmt := range fragmentPrelude {
		if _, err := i.Eval(stmt); err != nil {
			return "", fmt.Errorf("failed to load prelude: %w", err)
		}
	}

	_, err := i.EvalWithContext(ctx, snippet.Source)
	return stdout.String(), err
}

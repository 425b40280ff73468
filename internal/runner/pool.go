package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/harrison/snipcheck/internal/models"
)

// Logger receives progress notifications during document execution.
// Implementations must be safe for concurrent use.
type Logger interface {
	LogDocumentStart(doc *models.Document)
	LogDocumentComplete(doc *models.Document, duration time.Duration)
}

// Pool runs one document's snippets with bounded parallelism. Snippets
// share no mutable state, so execution order is unconstrained; results are
// collected back into extraction order regardless of completion order.
type Pool struct {
	engine         Engine
	timeout        time.Duration // per-snippet budget (0 = unbounded)
	maxConcurrency int           // 0 = one worker per snippet
	logger         Logger        // optional, nil disables logging
}

// NewPool constructs a Pool around the provided engine.
func NewPool(engine Engine, timeout time.Duration, maxConcurrency int, logger Logger) *Pool {
	return &Pool{
		engine:         engine,
		timeout:        timeout,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

type indexedResult struct {
	index  int
	result models.ExecutionResult
}

// RunDocument evaluates every snippet of the document and returns one
// ExecutionResult per snippet, indexed by extraction order. The timeout
// argument overrides the pool's per-snippet budget when positive (used for
// frontmatter overrides). Cancellation of ctx stops launching new snippets;
// snippets that never ran come back with Cancelled set so the comparator
// can mark them skipped.
func (p *Pool) RunDocument(ctx context.Context, doc *models.Document, timeout time.Duration) []models.ExecutionResult {
	results := make([]models.ExecutionResult, len(doc.Snippets))
	for i := range results {
		results[i].Cancelled = true
	}

	count := len(doc.Snippets)
	if count == 0 {
		return results
	}

	if timeout <= 0 {
		timeout = p.timeout
	}

	maxConcurrency := p.maxConcurrency
	if maxConcurrency <= 0 || maxConcurrency > count {
		maxConcurrency = count
	}

	start := time.Now()
	if p.logger != nil {
		p.logger.LogDocumentStart(doc)
	}

	semaphore := make(chan struct{}, maxConcurrency)
	resultsCh := make(chan indexedResult, count)

	var wg sync.WaitGroup

	for _, snippet := range doc.Snippets {
		// Check context before acquiring a slot to avoid blocking on a
		// cancelled context
		select {
		case <-ctx.Done():
		case semaphore <- struct{}{}:
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(snippet models.Snippet) {
			defer wg.Done()
			defer func() { <-semaphore }()

			result := p.runOne(ctx, doc.Path, snippet, timeout)
			resultsCh <- indexedResult{index: snippet.Index, result: result}
		}(snippet)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	// Restore extraction order: completion order is irrelevant for the
	// report
	for r := range resultsCh {
		if r.index >= 0 && r.index < len(results) {
			results[r.index] = r.result
		}
	}

	if p.logger != nil {
		p.logger.LogDocumentComplete(doc, time.Since(start))
	}

	return results
}

// runOne evaluates a single snippet under its timeout and classifies the
// outcome. Faults raised by the snippet are captured into the result, never
// propagated: one failing snippet must not halt the run.
func (p *Pool) runOne(parent context.Context, docPath string, snippet models.Snippet, timeout time.Duration) models.ExecutionResult {
	ctx := parent
	cancel := func() {}
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	}
	defer cancel()

	start := time.Now()
	output, err := p.engine.Run(ctx, snippet)

	result := models.ExecutionResult{
		Output:   output,
		Duration: time.Since(start),
	}

	if err == nil {
		return result
	}

	switch {
	case parent.Err() != nil:
		// The global run deadline fired, not the snippet's own budget
		result.Cancelled = true
	case errors.Is(err, context.DeadlineExceeded):
		result.TimedOut = true
		result.Fault = NewTimeoutError(snippet.Locator(docPath), timeout).Error()
	default:
		result.Fault = err.Error()
	}

	return result
}

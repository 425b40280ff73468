// Package logger provides logging implementations for snipcheck runs.
//
// The logger package offers structured logging of verification progress at
// the document and summary levels. Implementations are thread-safe and
// support level filtering. Color output is enabled automatically for
// terminal writers.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/snipcheck/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs verification progress to a writer with [HH:MM:SS]
// timestamps and thread safety. It supports log level filtering; valid
// levels are trace, debug, info, warn, error.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to the provided writer.
// If writer is nil, messages are silently discarded. An empty or invalid
// logLevel defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// The color library's detection also honors NO_COLOR
		return !color.NoColor
	}
	return false
}

func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	if cl.colorOutput {
		cl.writer.Write([]byte(fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)))
		return
	}
	cl.writer.Write([]byte(fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)))
}

func colorLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogDocumentStart logs the start of a document's verification at INFO
// level. Format: "[HH:MM:SS] Checking <path>: <count> snippets"
func (cl *ConsoleLogger) LogDocumentStart(doc *models.Document) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	path := doc.Path
	if cl.colorOutput {
		path = color.New(color.Bold).Sprint(path)
	}
	fmt.Fprintf(cl.writer, "[%s] Checking %s: %d snippets\n", ts, path, len(doc.Snippets))
}

// LogDocumentComplete logs the completion of a document's verification at
// INFO level. Format: "[HH:MM:SS] <path> done (<duration>)"
func (cl *ConsoleLogger) LogDocumentComplete(doc *models.Document, duration time.Duration) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	path := doc.Path
	done := "done"
	if cl.colorOutput {
		path = color.New(color.Bold).Sprint(path)
		done = color.New(color.FgGreen).Sprint(done)
	}
	fmt.Fprintf(cl.writer, "[%s] %s %s (%s)\n", ts, path, done, formatDuration(duration))
}

// LogSnippetResult logs one snippet verdict at DEBUG level.
func (cl *ConsoleLogger) LogSnippetResult(docPath string, result models.SnippetResult) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	verdict := string(result.Verdict)
	if cl.colorOutput {
		switch result.Verdict {
		case models.VerdictPassed:
			verdict = color.New(color.FgGreen).Sprint(verdict)
		case models.VerdictFailed:
			verdict = color.New(color.FgRed).Sprint(verdict)
		case models.VerdictSkipped:
			verdict = color.New(color.FgYellow).Sprint(verdict)
		}
	}

	if result.Reason != "" {
		fmt.Fprintf(cl.writer, "[%s] %s: %s (%s)\n", ts, result.Snippet.Locator(docPath), verdict, result.Reason)
		return
	}
	fmt.Fprintf(cl.writer, "[%s] %s: %s\n", ts, result.Snippet.Locator(docPath), verdict)
}

// LogSummary logs run totals at INFO level.
func (cl *ConsoleLogger) LogSummary(rep *models.Report) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	fmt.Fprintf(cl.writer, "[%s] %d passed, %d failed, %d skipped across %d documents (%s)\n",
		ts, rep.Totals.Passed, rep.Totals.Failed, rep.Totals.Skipped,
		len(rep.Documents), formatDuration(rep.Duration))
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a duration to a compact human-readable string.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return d.Round(time.Minute).String()
	case d >= time.Minute:
		return d.Round(time.Second).String()
	case d >= time.Second:
		return d.Round(100 * time.Millisecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}

// NoOpLogger discards all log messages. Useful for tests and quiet mode.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogDocumentStart is a no-op implementation.
func (n *NoOpLogger) LogDocumentStart(doc *models.Document) {}

// LogDocumentComplete is a no-op implementation.
func (n *NoOpLogger) LogDocumentComplete(doc *models.Document, duration time.Duration) {}

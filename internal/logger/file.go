package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/snipcheck/internal/models"
)

// FileLogger writes run events to a per-run log file in the configured
// directory and maintains a latest.log symlink pointing at the most recent
// run. It is thread-safe and mirrors the console logger's line format so
// run logs can be grepped the same way terminal output is read.
type FileLogger struct {
	logDir  string
	runLog  *os.File
	runFile string
	mu      sync.Mutex
}

// NewFileLogger opens a run log named after the run ID in logDir, creating
// the directory as needed.
func NewFileLogger(logDir, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", runID))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Best-effort latest.log symlink; some filesystems refuse symlinks
	symlink := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlink); err == nil {
		os.Remove(symlink)
	}
	os.Symlink(filepath.Base(runFile), symlink)

	return &FileLogger{
		logDir:  logDir,
		runLog:  file,
		runFile: runFile,
	}, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// Close flushes and closes the run log.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

func (fl *FileLogger) write(line string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}
	fmt.Fprintf(fl.runLog, "[%s] %s\n", timestamp(), line)
}

// LogDocumentStart records the start of a document's verification.
func (fl *FileLogger) LogDocumentStart(doc *models.Document) {
	fl.write(fmt.Sprintf("Checking %s: %d snippets", doc.Path, len(doc.Snippets)))
}

// LogDocumentComplete records the completion of a document's verification.
func (fl *FileLogger) LogDocumentComplete(doc *models.Document, duration time.Duration) {
	fl.write(fmt.Sprintf("%s done (%s)", doc.Path, formatDuration(duration)))
}

// LogSnippetResult records one snippet verdict.
func (fl *FileLogger) LogSnippetResult(docPath string, result models.SnippetResult) {
	if result.Reason != "" {
		fl.write(fmt.Sprintf("%s: %s (%s)", result.Snippet.Locator(docPath), result.Verdict, result.Reason))
		return
	}
	fl.write(fmt.Sprintf("%s: %s", result.Snippet.Locator(docPath), result.Verdict))
}

// LogSummary records run totals.
func (fl *FileLogger) LogSummary(rep *models.Report) {
	fl.write(fmt.Sprintf("run %s: %d passed, %d failed, %d skipped across %d documents (%s)",
		rep.RunID, rep.Totals.Passed, rep.Totals.Failed, rep.Totals.Skipped,
		len(rep.Documents), formatDuration(rep.Duration)))
}

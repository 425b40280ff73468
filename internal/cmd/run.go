package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/snipcheck/internal/compare"
	"github.com/harrison/snipcheck/internal/config"
	"github.com/harrison/snipcheck/internal/display"
	"github.com/harrison/snipcheck/internal/fileutil"
	"github.com/harrison/snipcheck/internal/logger"
	"github.com/harrison/snipcheck/internal/models"
	"github.com/harrison/snipcheck/internal/parser"
	"github.com/harrison/snipcheck/internal/report"
	"github.com/harrison/snipcheck/internal/runner"
)

// runLogger fans progress events out to the console logger and, when
// enabled, the per-run file logger. It implements runner.Logger.
type runLogger struct {
	console *logger.ConsoleLogger
	file    *logger.FileLogger
}

func (l *runLogger) LogDocumentStart(doc *models.Document) {
	l.console.LogDocumentStart(doc)
	if l.file != nil {
		l.file.LogDocumentStart(doc)
	}
}

func (l *runLogger) LogDocumentComplete(doc *models.Document, duration time.Duration) {
	l.console.LogDocumentComplete(doc, duration)
	if l.file != nil {
		l.file.LogDocumentComplete(doc, duration)
	}
}

func (l *runLogger) LogSnippetResult(docPath string, result models.SnippetResult) {
	l.console.LogSnippetResult(docPath, result)
	if l.file != nil {
		l.file.LogSnippetResult(docPath, result)
	}
}

func (l *runLogger) LogSummary(rep *models.Report) {
	l.console.LogSummary(rep)
	if l.file != nil {
		l.file.LogSummary(rep)
	}
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <document-or-directory>...",
		Short: "Extract, execute, and verify snippets",
		Long: `Run the verification pipeline over the given documents.

Each argument is a markdown file or a directory scanned recursively for
.md/.markdown files. Every runnable snippet is evaluated in a fresh,
isolated interpreter; snippets share no state, so results never depend on
execution order. Within a document snippets run concurrently up to the
configured limit, and reporting order always matches document order.

Configuration is loaded from .snipcheck/config.yaml if present. CLI flags
override configuration file settings.

Exit status: 0 when every snippet with an expectation passed, 1 when any
failed, 2 when a document had structural extraction errors.

Examples:
  snipcheck run docs/
  snipcheck run docs/variables.md docs/operators.md
  snipcheck run --snippet-timeout 2s --max-concurrency 4 docs/
  snipcheck run --include 'tutorial-.*' --exclude '.*-draft' docs/
  snipcheck run --json docs/ > report.json
  snipcheck run --output report.json docs/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .snipcheck/config.yaml)")
	cmd.Flags().Int("max-concurrency", -1, "Maximum concurrent snippets per document (0 = one worker per snippet)")
	cmd.Flags().String("snippet-timeout", "", "Execution budget per snippet (e.g. 5s, 500ms)")
	cmd.Flags().String("deadline", "", "Global run deadline (e.g. 2m); snippets cut off by it are reported skipped")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().String("include", "", "Regex of document filenames to include")
	cmd.Flags().String("exclude", "", "Regex of document filenames to exclude")
	cmd.Flags().Bool("json", false, "Emit the report as JSON on stdout")
	cmd.Flags().String("output", "", "Also export the JSON report to this file")
	cmd.Flags().Bool("verbose", false, "Show passed and skipped snippets in the report")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

// docOutcome is one document's slot in the pipeline output. Slots are
// indexed by discovery order so the report stays deterministic regardless
// of which document finishes first.
type docOutcome struct {
	doc        *models.Document
	results    []models.SnippetResult
	structural *parser.StructuralError
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	outputPath, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	files, err := discoverDocuments(args, cfg)
	if err != nil {
		return err
	}

	warner := display.NewWarner()
	builder := report.NewBuilder()

	// Progress goes to stderr so stdout stays clean for the report
	console := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)
	runLog := &runLogger{console: console}
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, builder.RunID())
		if err != nil {
			return err
		}
		defer fileLog.Close()
		runLog.file = fileLog
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.RunDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunDeadline)
		defer cancel()
	}

	outcomes := verifyAll(ctx, files, cfg, runLog)

	for _, outcome := range outcomes {
		if outcome.structural != nil {
			warner.Warnf("%s", outcome.structural.Error())
			builder.AddStructural(outcome.structural.Document, outcome.structural.Line, outcome.structural.Message)
			continue
		}
		builder.AddDocument(outcome.doc, outcome.results)
		for _, result := range outcome.results {
			runLog.LogSnippetResult(outcome.doc.Path, result)
		}
	}

	rep := builder.Build()
	runLog.LogSummary(rep)

	if jsonOut {
		if err := report.WriteJSON(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		useColor := display.StdoutIsTerminal() && !noColor
		report.NewRenderer(os.Stdout, useColor, verbose).Render(rep)
	}

	if outputPath != "" {
		if err := report.ExportFile(outputPath, rep); err != nil {
			return err
		}
	}

	switch {
	case rep.HasStructuralErrors():
		return &ExitError{Code: ExitStructural, Message: "structural extraction errors"}
	case rep.Failed():
		return &ExitError{Code: ExitFailed, Message: "snippet verification failed"}
	default:
		return nil
	}
}

// verifyAll runs the extract → run → compare pipeline for every document,
// fanning documents out across workers. Slot indexing keeps report order
// equal to discovery order.
func verifyAll(ctx context.Context, files []string, cfg *config.Config, runLog runner.Logger) []docOutcome {
	extractor := parser.NewExtractor()
	pool := runner.NewPool(runner.NewYaegiEngine(), cfg.SnippetTimeout, cfg.MaxConcurrency, runLog)

	outcomes := make([]docOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = verifyDocument(gctx, extractor, pool, path)
			return nil
		})
	}
	// Workers never return errors: faults are captured per snippet and
	// structural problems per document
	g.Wait()

	return outcomes
}

// verifyDocument handles a single document end to end. A structural error
// fails only this document; the rest of the run is unaffected.
func verifyDocument(ctx context.Context, extractor *parser.Extractor, pool *runner.Pool, path string) docOutcome {
	extraction, err := extractor.ParseFile(path)
	if err != nil {
		var se *parser.StructuralError
		if !errors.As(err, &se) {
			se = parser.NewStructuralError(path, 0, err.Error())
		}
		return docOutcome{structural: se}
	}

	timeout, err := extraction.Meta.TimeoutDuration()
	if err != nil {
		return docOutcome{structural: parser.NewStructuralError(path, 1, err.Error())}
	}

	executions := pool.RunDocument(ctx, extraction.Document, timeout)
	return docOutcome{
		doc:     extraction.Document,
		results: compare.JudgeAll(extraction.Document, executions),
	}
}

// loadRunConfig loads the config file and merges flag overrides, mirroring
// the precedence rule documented on the run command.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var maxConcurrencyPtr *int
	if cmd.Flags().Changed("max-concurrency") {
		v, _ := cmd.Flags().GetInt("max-concurrency")
		maxConcurrencyPtr = &v
	}

	var timeoutPtr *time.Duration
	if cmd.Flags().Changed("snippet-timeout") {
		s, _ := cmd.Flags().GetString("snippet-timeout")
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid snippet-timeout %q: %w", s, err)
		}
		timeoutPtr = &d
	}

	var deadlinePtr *time.Duration
	if cmd.Flags().Changed("deadline") {
		s, _ := cmd.Flags().GetString("deadline")
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline %q: %w", s, err)
		}
		deadlinePtr = &d
	}

	var logDirPtr, includePtr, excludePtr *string
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDirPtr = &v
	}
	if cmd.Flags().Changed("include") {
		v, _ := cmd.Flags().GetString("include")
		includePtr = &v
	}
	if cmd.Flags().Changed("exclude") {
		v, _ := cmd.Flags().GetString("exclude")
		excludePtr = &v
	}

	cfg.MergeWithFlags(maxConcurrencyPtr, timeoutPtr, deadlinePtr, logDirPtr, includePtr, excludePtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// discoverDocuments resolves CLI arguments to the document list.
func discoverDocuments(args []string, cfg *config.Config) ([]string, error) {
	scanned, err := fileutil.Discover(args, fileutil.ScanOptions{
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
		Extensions: []string{".md", ".markdown"},
		Recursive:  true,
	})
	if err != nil {
		return nil, err
	}

	for _, scanErr := range scanned.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", scanErr)
	}

	return scanned.Files, nil
}

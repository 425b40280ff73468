// Package cmd wires the snipcheck command-line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ExitError carries a process exit status through cobra's error return.
// The message is informational only; the report has already been printed
// by the time an ExitError surfaces.
type ExitError struct {
	Code    int
	Message string
}

// Exit status values for the run command.
const (
	ExitOK         = 0 // all snippets with expectations passed
	ExitFailed     = 1 // at least one snippet failed
	ExitStructural = 2 // structural extraction errors
)

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCommand creates and returns the root cobra command for snipcheck.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snipcheck",
		Short: "Verify code snippets embedded in tutorial documents",
		Long: `Snipcheck extracts runnable code snippets from markdown tutorial
documents, evaluates each one in an isolated interpreter, and checks that
the captured output matches the expectation the document declares.

A snippet is a fenced code block tagged with a language; its expectation is
a trailing "// Output:" comment, a "// Error:" comment for an expected
fault, or an adjacent fenced block tagged "output". Snippets without an
expectation are reported as skipped, never as failures.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text; exit
		// errors are handled in main
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewListCommand())

	return cmd
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/snipcheck/internal/display"
	"github.com/harrison/snipcheck/internal/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document-or-directory>...",
		Short: "Check snippet extraction without executing anything",
		Long: `Validate extracts snippets from the given documents and reports what a
run would execute, without evaluating any code.

For every document it prints the number of runnable snippets and how many
carry expectations. Structural problems (such as an unterminated fence) are
reported with the document and opening line.

Exit status: 0 when every document extracts cleanly, 2 otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .snipcheck/config.yaml)")
	cmd.Flags().String("include", "", "Regex of document filenames to include")
	cmd.Flags().String("exclude", "", "Regex of document filenames to exclude")

	return cmd
}

func validateCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	files, err := discoverDocuments(args, cfg)
	if err != nil {
		return err
	}

	warner := display.NewWarner()
	extractor := parser.NewExtractor()

	structural := 0
	for _, path := range files {
		extraction, err := extractor.ParseFile(path)
		if err != nil {
			var se *parser.StructuralError
			if !errors.As(err, &se) {
				se = parser.NewStructuralError(path, 0, err.Error())
			}
			warner.Warnf("%s", se.Error())
			structural++
			continue
		}

		doc := extraction.Document
		withExpectation := 0
		for _, snippet := range doc.Snippets {
			if snippet.Expected != nil {
				withExpectation++
			}
		}

		fmt.Fprintf(os.Stdout, "%s: %d snippets, %d with expectations\n",
			doc.Path, len(doc.Snippets), withExpectation)
	}

	if structural > 0 {
		return &ExitError{
			Code:    ExitStructural,
			Message: fmt.Sprintf("%d documents failed extraction", structural),
		}
	}
	return nil
}

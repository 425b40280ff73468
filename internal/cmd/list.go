package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/snipcheck/internal/display"
	"github.com/harrison/snipcheck/internal/parser"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <document-or-directory>...",
		Short: "List extracted snippets and their expectations",
		Long: `List prints every runnable snippet with its locator and the kind of
expectation it declares: "output" for expected stdout, "error" for an
expected fault, or "none" for documentation-only snippets that a run would
report as skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: listCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .snipcheck/config.yaml)")
	cmd.Flags().String("include", "", "Regex of document filenames to include")
	cmd.Flags().String("exclude", "", "Regex of document filenames to exclude")

	return cmd
}

func listCommand(cmd *cobra.Command, args []string) error {
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

	for _, path := range files {
		extraction, err := extractor.ParseFile(path)
		if err != nil {
			var se *parser.StructuralError
			if !errors.As(err, &se) {
				se = parser.NewStructuralError(path, 0, err.Error())
			}
			warner.Warnf("%s", se.Error())
			continue
		}

		doc := extraction.Document
		for _, snippet := range doc.Snippets {
			kind := "none"
			if snippet.Expected != nil {
				kind = "output"
				if snippet.Expected.IsError {
					kind = "error"
				}
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\texpectation=%s\n",
				snippet.Locator(doc.Path), snippet.Language, kind)
		}
	}

	return nil
}

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/harrison/snipcheck/internal/filelock"
	"github.com/harrison/snipcheck/internal/models"
)

// jsonReport is the stable JSON shape of a run report.
type jsonReport struct {
	RunID      string           `json:"run_id"`
	Generated  time.Time        `json:"generated"`
	DurationMS int64            `json:"duration_ms"`
	Totals     models.Summary   `json:"totals"`
	Documents  []jsonDocument   `json:"documents"`
	Structural []jsonStructural `json:"structural_errors,omitempty"`
}

type jsonDocument struct {
	Path     string         `json:"path"`
	Title    string         `json:"title"`
	Summary  models.Summary `json:"summary"`
	Snippets []jsonSnippet  `json:"snippets"`
}

type jsonSnippet struct {
	Index      int    `json:"index"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	Verdict    string `json:"verdict"`
	Reason     string `json:"reason,omitempty"`
	Expected   string `json:"expected,omitempty"`
	Output     string `json:"output,omitempty"`
	Fault      string `json:"fault,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type jsonStructural struct {
	Document string `json:"document"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

func toJSON(rep *models.Report) jsonReport {
	out := jsonReport{
		RunID:      rep.RunID,
		Generated:  rep.Generated,
		DurationMS: rep.Duration.Milliseconds(),
		Totals:     rep.Totals,
	}

	for _, doc := range rep.Documents {
		jd := jsonDocument{
			Path:     doc.Path,
			Title:    doc.Title,
			Summary:  doc.Summary,
			Snippets: make([]jsonSnippet, 0, len(doc.Results)),
		}
		for _, r := range doc.Results {
			js := jsonSnippet{
				Index:      r.Snippet.Index,
				StartLine:  r.Snippet.StartLine,
				EndLine:    r.Snippet.EndLine,
				Verdict:    string(r.Verdict),
				Reason:     r.Reason,
				Output:     r.Execution.Output,
				Fault:      r.Execution.Fault,
				DurationMS: r.Execution.Duration.Milliseconds(),
			}
			if r.Snippet.Expected != nil {
				js.Expected = r.Snippet.Expected.Output
			}
			jd.Snippets = append(jd.Snippets, js)
		}
		out.Documents = append(out.Documents, jd)
	}

	for _, w := range rep.Structural {
		out.Structural = append(out.Structural, jsonStructural{
			Document: w.Document,
			Line:     w.Line,
			Message:  w.Message,
		})
	}

	return out
}

// WriteJSON streams the report as indented JSON.
func WriteJSON(w io.Writer, rep *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSON(rep)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// ExportFile writes the JSON report to path under a file lock with an
// atomic rename, so concurrent runs exporting to the same path never leave
// a truncated file behind.
func ExportFile(path string, rep *models.Report) error {
	data, err := json.MarshalIndent(toJSON(rep), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to export report to %s: %w", path, err)
	}
	return nil
}

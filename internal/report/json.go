package report

import (
	"encoding/json"
	"io"

	"github.com/JonMunkholm/dqaudit/internal/core"
)

// Document is the top-level shape of the JSON export.
type Document struct {
	Summary core.Summary `json:"summary"`
	Issues  []core.Issue `json:"issues"`
}

// NewDocument pairs a summary with the reported issues. A nil slice is
// replaced with an empty one so the export always carries a list.
func NewDocument(summary core.Summary, issues []core.Issue) Document {
	if issues == nil {
		issues = []core.Issue{}
	}
	return Document{Summary: summary, Issues: issues}
}

// WriteJSON exports the summary and issues to path. The file is written even
// when there are no issues.
func WriteJSON(path string, summary core.Summary, issues []core.Issue) error {
	return writeFile(path, "export json", func(w io.Writer) error {
		return EncodeJSON(w, summary, issues)
	})
}

// EncodeJSON writes the document with two-space indentation.
func EncodeJSON(w io.Writer, summary core.Summary, issues []core.Issue) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(summary, issues))
}

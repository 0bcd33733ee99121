package report

import (
	"encoding/csv"
	"io"

	"github.com/JonMunkholm/dqaudit/internal/core"
)

// CSVHeader is the column layout of the CSV export.
var CSVHeader = []string{"row", "field", "value", "reason"}

// utf8BOM lets Excel detect the encoding.
const utf8BOM = "\ufeff"

// WriteCSV exports issues to path. Nothing is written when issues is empty;
// the returned bool reports whether a file was produced.
func WriteCSV(path string, issues []core.Issue, bom bool) (bool, error) {
	if len(issues) == 0 {
		return false, nil
	}
	err := writeFile(path, "export csv", func(w io.Writer) error {
		return EncodeCSV(w, issues, bom)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// EncodeCSV writes the header and one row per issue.
func EncodeCSV(w io.Writer, issues []core.Issue, bom bool) error {
	if bom {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(CSVHeader); err != nil {
		return err
	}
	for _, issue := range issues {
		if err := csvWriter.Write(issueRow(issue)); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func issueRow(i core.Issue) []string {
	return []string{
		itoa(i.Row),
		i.Field,
		i.Value.String(),
		i.Reason,
	}
}

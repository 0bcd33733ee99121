package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/dqaudit/internal/core"
)

// HTMLReport holds what the HTML page shows.
type HTMLReport struct {
	Title       string
	Source      string // Input path
	GeneratedAt time.Time
	Threshold   core.Severity
	Summary     core.Summary
	Issues      []core.Issue
}

// WriteHTML renders the report to path. The file is written even when there
// are no issues.
func WriteHTML(ctx context.Context, path string, r HTMLReport) error {
	return writeFile(path, "export html", func(w io.Writer) error {
		return Page(r).Render(ctx, w)
	})
}

// Page is the full HTML document as a templ component.
func Page(r HTMLReport) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := r.Title
		if title == "" {
			title = "Data quality report"
		}

		p := &htmlPrinter{w: w}
		p.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		p.raw("<title>")
		p.text(title)
		p.raw("</title>\n<style>\n")
		p.raw(pageStyle)
		p.raw("</style>\n</head>\n<body>\n<h1>")
		p.text(title)
		p.raw("</h1>\n")

		p.raw("<p class=\"meta\">Source: <code>")
		p.text(r.Source)
		p.raw("</code>")
		if !r.GeneratedAt.IsZero() {
			p.raw(" &middot; Generated ")
			p.text(r.GeneratedAt.Format("2006-01-02 15:04:05"))
		}
		if r.Threshold != "" {
			p.raw(" &middot; Threshold: ")
			p.text(string(r.Threshold))
		}
		p.raw("</p>\n")

		summaryTable(p, r.Summary)
		issuesTable(p, r.Issues)

		p.raw("</body>\n</html>\n")
		return p.err
	})
}

func summaryTable(p *htmlPrinter, s core.Summary) {
	p.raw("<h2>Summary</h2>\n<table class=\"summary\">\n<tbody>\n")
	row := func(label string, n int) {
		p.raw("<tr><th>")
		p.text(label)
		p.raw("</th><td>")
		p.text(itoa(n))
		p.raw("</td></tr>\n")
	}
	row("Total records", s.TotalRecords)
	row("Total issues", s.TotalIssues)
	for _, sev := range core.Severities {
		row(string(sev), s.SeverityCounts.Get(sev))
	}
	p.raw("</tbody>\n</table>\n")
}

func issuesTable(p *htmlPrinter, issues []core.Issue) {
	p.raw("<h2>Issues</h2>\n")
	if len(issues) == 0 {
		p.raw("<p class=\"empty\">No issues reported.</p>\n")
		return
	}
	p.raw("<table class=\"issues\">\n<thead><tr><th>Row</th><th>Field</th><th>Value</th><th>Reason</th><th>Severity</th></tr></thead>\n<tbody>\n")
	for _, i := range issues {
		p.raw(fmt.Sprintf("<tr class=\"sev-%s\"><td>", templ.EscapeString(string(i.Severity))))
		p.text(itoa(i.Row))
		p.raw("</td><td>")
		p.text(i.Field)
		p.raw("</td><td>")
		if i.Value.Kind == core.ValueNull {
			p.raw("<em>null</em>")
		} else {
			p.text(i.Value.String())
		}
		p.raw("</td><td>")
		p.text(i.Reason)
		p.raw("</td><td>")
		p.text(string(i.Severity))
		p.raw("</td></tr>\n")
	}
	p.raw("</tbody>\n</table>\n")
}

// htmlPrinter keeps the first write error so rendering code stays linear.
type htmlPrinter struct {
	w   io.Writer
	err error
}

func (p *htmlPrinter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *htmlPrinter) text(s string) {
	p.raw(templ.EscapeString(s))
}

func itoa(n int) string { return strconv.Itoa(n) }

const pageStyle = `body { font-family: system-ui, sans-serif; margin: 2rem; color: #1f2933; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #cbd2d9; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #f5f7fa; }
.meta { color: #616e7c; }
.sev-info td:last-child { color: #2680c2; }
.sev-warning td:last-child { color: #cb6e17; }
.sev-error td:last-child { color: #ba2525; font-weight: bold; }
`

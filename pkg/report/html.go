package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
)

// view is the immutable render input produced by snapshot.
type view struct {
	RunID    string
	Started  time.Time
	Outcomes []Outcome
	Findings []finding.Finding
	Passed   int
	Failed   int
	Skipped  int
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"millis": func(d time.Duration) int64 { return d.Milliseconds() },
	"stamp":  func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"statusClass": func(s Status) string {
		switch s {
		case StatusPassed:
			return "pass"
		case StatusFailed:
			return "fail"
		default:
			return "skip"
		}
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Login Page Test Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #222; }
h1 { color: #2c3e50; }
table { border-collapse: collapse; width: 100%; margin-top: 12px; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; font-size: 14px; }
th { background: #2c3e50; color: #fff; }
tr.pass td.status { color: #27ae60; font-weight: bold; }
tr.fail td.status { color: #c0392b; font-weight: bold; }
tr.skip td.status { color: #7f8c8d; font-weight: bold; }
.summary span { margin-right: 18px; font-size: 15px; }
.sev-critical { color: #c0392b; font-weight: bold; }
.sev-high { color: #e67e22; font-weight: bold; }
.sev-medium { color: #d4a017; }
.sev-low, .sev-info { color: #7f8c8d; }
</style>
</head>
<body>
<h1>Login Page Test Report</h1>
<p>Run {{.RunID}} started {{stamp .Started}}</p>
<div class="summary">
<span>Total: {{len .Outcomes}}</span>
<span>Passed: {{.Passed}}</span>
<span>Failed: {{.Failed}}</span>
<span>Skipped: {{.Skipped}}</span>
</div>
<h2>Results</h2>
<table>
<tr><th>Test Name</th><th>Status</th><th>Duration (ms)</th><th>Timestamp</th><th>Screenshot</th><th>Error</th></tr>
{{range .Outcomes}}<tr class="{{statusClass .Status}}">
<td>{{.Name}}</td>
<td class="status">{{.Status}}</td>
<td>{{millis .Duration}}</td>
<td>{{stamp .Timestamp}}</td>
<td>{{if .Screenshot}}<a href="{{.Screenshot}}">screenshot</a>{{end}}</td>
<td>{{.Err}}</td>
</tr>
{{end}}</table>
{{if .Findings}}<h2>Findings</h2>
<table>
<tr><th>Severity</th><th>Kind</th><th>Field</th><th>Detail</th></tr>
{{range .Findings}}<tr>
<td class="sev-{{.Severity}}">{{.Severity}}</td>
<td>{{.Kind}}</td>
<td>{{.Field}}</td>
<td>{{.Detail}}</td>
</tr>
{{end}}</table>
{{end}}</body>
</html>
`))

// renderHTML writes the report page. The output depends only on v, so
// repeated renders of the same state are identical.
func renderHTML(w io.Writer, v view) error {
	if err := htmlTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("report: render html: %w", err)
	}
	return nil
}

package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
)

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Render(&buf, Summary{
		RunID:   "run-123",
		Total:   5,
		Passed:  3,
		Failed:  1,
		Skipped: 1,
		Findings: []finding.Finding{
			finding.New(finding.CSRFMissingToken, "login form has no token"),
		},
		HTMLPath: "reports/TestReport.html",
		CSVPath:  "reports/TestResults.csv",
	})

	out := buf.String()
	assert.Contains(t, out, "run-123")
	assert.Contains(t, out, "3 passed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "login form has no token")
	assert.Contains(t, out, "reports/TestReport.html")
}

func TestRenderWithoutFindings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Render(&buf, Summary{RunID: "r", Total: 1, Passed: 1})
	assert.NotContains(t, buf.String(), "Findings")
}

package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
	"github.com/ChandanKT-git/QA-Janitri/pkg/testutil"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	return NewAggregator(config.Load(""), testutil.Logger(t))
}

func TestRecordAndSummary(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(t)
	a.Record("testValidLogin", StatusPassed, 1200*time.Millisecond, time.Time{}, "", "")
	a.Record("testInvalidLogin", StatusFailed, 800*time.Millisecond, time.Time{}, "shots/fail.png", "error text")
	a.Record("testMobileView", StatusSkipped, 0, time.Time{}, "", "")

	total, passed, failed, skipped := a.Summary()
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
	assert.NotEmpty(t, a.RunID())
}

func TestConcurrentRecord(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(t)
	const workers = 16
	const each = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				a.Record(fmt.Sprintf("case_%d_%d", w, i), StatusPassed, time.Millisecond, time.Time{}, "", "")
			}
		}(w)
	}
	wg.Wait()

	total, passed, _, _ := a.Summary()
	assert.Equal(t, workers*each, total)
	assert.Equal(t, workers*each, passed)
}

func TestRenderCSV(t *testing.T) {
	t.Parallel()

	v := view{
		Outcomes: []Outcome{
			{
				Name:      "testErrorMessage",
				Status:    StatusFailed,
				Duration:  1500 * time.Millisecond,
				Timestamp: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
				Err:       `expected "Invalid credentials", got nothing`,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderCSV(&buf, v))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Test Name,Status,Duration (ms),Timestamp,Screenshot,Error Message", lines[0])
	// Quotes in the error message are escaped by doubling.
	assert.Contains(t, lines[1], `""Invalid credentials""`)
	assert.Contains(t, lines[1], "1500")
}

func TestRendersAreDeterministic(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(t)
	a.Record("a", StatusPassed, time.Second, time.Time{}, "", "")
	a.Record("b", StatusFailed, time.Second, time.Time{}, "", "boom")
	a.RecordFindings([]finding.Finding{
		finding.New(finding.MissingAltText, "logo"),
		finding.New(finding.XSSAlert, "alert fired"),
	})

	v := a.snapshot()

	var html1, html2, csv1, csv2 bytes.Buffer
	require.NoError(t, renderHTML(&html1, v))
	require.NoError(t, renderHTML(&html2, v))
	require.NoError(t, renderCSV(&csv1, v))
	require.NoError(t, renderCSV(&csv2, v))

	assert.Equal(t, html1.String(), html2.String())
	assert.Equal(t, csv1.String(), csv2.String())
}

func TestSnapshotOrdersFindingsBySeverity(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(t)
	a.RecordFindings([]finding.Finding{
		finding.New(finding.MissingAltText, "low first"),
		finding.New(finding.XSSAlert, "critical second"),
	})

	v := a.snapshot()
	require.Len(t, v.Findings, 2)
	assert.Equal(t, finding.XSSAlert, v.Findings[0].Kind)
}

func TestWriteReports(t *testing.T) {
	props := testutil.TempProperties(t, map[string]string{
		"reportDir": filepath.Join(t.TempDir(), "out"),
	})
	a := NewAggregator(config.Load(props), testutil.Logger(t))
	a.Record("testPageLoadsSuccessfully", StatusPassed, 900*time.Millisecond, time.Time{}, "", "")

	htmlPath, csvPath := a.WriteReports()
	require.NotEmpty(t, htmlPath)
	require.NotEmpty(t, csvPath)

	htmlBody, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(htmlBody), "testPageLoadsSuccessfully")
	assert.Contains(t, string(htmlBody), "Login Page Test Report")

	csvBody, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csvBody), "Test Name,Status,"))
}

func TestWriteReportsAbsorbsFailure(t *testing.T) {
	// A regular file where the report directory should go makes every
	// write fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	props := testutil.TempProperties(t, map[string]string{
		"reportDir": filepath.Join(blocker, "out"),
	})
	a := NewAggregator(config.Load(props), testutil.Logger(t))
	a.Record("testAnything", StatusPassed, time.Second, time.Time{}, "", "")

	// Must not panic or surface the I/O error, only report empty paths.
	htmlPath, csvPath := a.WriteReports()
	assert.Empty(t, htmlPath)
	assert.Empty(t, csvPath)
}

func TestRenderToFailingWriter(t *testing.T) {
	t.Parallel()

	v := view{
		Outcomes: []Outcome{
			{Name: "a", Status: StatusPassed, Timestamp: time.Now()},
		},
	}

	sentinel := errors.New("disk full")
	assert.ErrorIs(t, renderCSV(&testutil.FailingWriter{Err: sentinel}, v), sentinel)
	assert.Error(t, renderHTML(&testutil.FailingWriter{Err: sentinel}, v))
}

func TestRecordUsesCallerTimestamp(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(t)
	stamp := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	a.Record("testStamped", StatusPassed, time.Second, stamp, "", "")

	v := a.snapshot()
	require.Len(t, v.Outcomes, 1)
	assert.Equal(t, stamp, v.Outcomes[0].Timestamp)
}

func TestInitRunResetsState(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(t)
	a.Record("old", StatusFailed, time.Second, time.Time{}, "", "boom")
	a.RecordFindings([]finding.Finding{finding.New(finding.MissingLang, "no lang")})
	oldRun := a.RunID()

	a.InitRun()

	total, _, _, _ := a.Summary()
	assert.Zero(t, total)
	assert.Empty(t, a.Findings())
	assert.NotEqual(t, oldRun, a.RunID())
}

func TestHTMLEscapesOutcomeFields(t *testing.T) {
	t.Parallel()

	v := view{
		Outcomes: []Outcome{
			{Name: "<script>alert(1)</script>", Status: StatusPassed, Timestamp: time.Now()},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderHTML(&buf, v))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

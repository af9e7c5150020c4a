// Package report collects test outcomes across concurrently running
// cases and renders the HTML and CSV artifacts.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/defaults"
	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
)

// Status is a test outcome state.
type Status string

const (
	StatusPassed  Status = "PASS"
	StatusFailed  Status = "FAIL"
	StatusSkipped Status = "SKIP"
)

// Outcome is one finished test case.
type Outcome struct {
	ID         string
	Name       string
	Status     Status
	Duration   time.Duration
	Timestamp  time.Time
	Screenshot string
	Err        string
}

// Aggregator accumulates outcomes and findings. All methods are safe
// for concurrent use.
type Aggregator struct {
	cfg *config.Store
	log *slog.Logger

	mu       sync.Mutex
	runID    string
	started  time.Time
	outcomes []Outcome
	findings []finding.Finding
}

// NewAggregator starts a run with a fresh identifier.
func NewAggregator(cfg *config.Store, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{
		cfg:     cfg,
		log:     log,
		runID:   uuid.NewString(),
		started: time.Now(),
	}
}

// RunID returns the identifier assigned to this run.
func (a *Aggregator) RunID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.runID
}

// InitRun discards all recorded state and starts a fresh run with a
// new identifier.
func (a *Aggregator) InitRun() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runID = uuid.NewString()
	a.started = time.Now()
	a.outcomes = nil
	a.findings = nil
}

// Record stores one finished case. A zero timestamp records the
// current time.
func (a *Aggregator) Record(name string, status Status, dur time.Duration, timestamp time.Time, screenshot, errMsg string) {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	o := Outcome{
		ID:         uuid.NewString(),
		Name:       name,
		Status:     status,
		Duration:   dur,
		Timestamp:  timestamp,
		Screenshot: screenshot,
		Err:        errMsg,
	}
	a.mu.Lock()
	a.outcomes = append(a.outcomes, o)
	a.mu.Unlock()
	a.log.Info("case recorded", "name", name, "status", string(status), "duration", dur)
}

// RecordFindings attaches probe and audit findings to the run.
func (a *Aggregator) RecordFindings(fs []finding.Finding) {
	a.mu.Lock()
	a.findings = append(a.findings, fs...)
	a.mu.Unlock()
}

// Findings returns a copy of the accumulated findings.
func (a *Aggregator) Findings() []finding.Finding {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]finding.Finding, len(a.findings))
	copy(out, a.findings)
	return out
}

// Summary tallies outcomes per status.
func (a *Aggregator) Summary() (total, passed, failed, skipped int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.outcomes {
		switch o.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return len(a.outcomes), passed, failed, skipped
}

// snapshot copies the aggregator state in a deterministic order so
// renders of the same state are byte-identical.
func (a *Aggregator) snapshot() view {
	a.mu.Lock()
	defer a.mu.Unlock()

	outcomes := make([]Outcome, len(a.outcomes))
	copy(outcomes, a.outcomes)
	sort.SliceStable(outcomes, func(i, j int) bool {
		if !outcomes[i].Timestamp.Equal(outcomes[j].Timestamp) {
			return outcomes[i].Timestamp.Before(outcomes[j].Timestamp)
		}
		return outcomes[i].Name < outcomes[j].Name
	})

	findings := make([]finding.Finding, len(a.findings))
	copy(findings, a.findings)
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity > findings[j].Severity
		}
		return findings[i].Detail < findings[j].Detail
	})

	v := view{
		RunID:    a.runID,
		Started:  a.started,
		Outcomes: outcomes,
		Findings: findings,
	}
	for _, o := range outcomes {
		switch o.Status {
		case StatusPassed:
			v.Passed++
		case StatusFailed:
			v.Failed++
		case StatusSkipped:
			v.Skipped++
		}
	}
	return v
}

// WriteReports renders both artifacts into the configured report
// directory and returns their paths. Write failures are logged, never
// raised; a failed artifact comes back as an empty path. Losing a
// report file must not fail an otherwise finished run.
func (a *Aggregator) WriteReports() (htmlPath, csvPath string) {
	dir := a.cfg.ReportDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.log.Warn("report directory not created", "dir", dir, "error", err)
		return "", ""
	}

	v := a.snapshot()
	htmlPath = a.writeArtifact(filepath.Join(dir, a.cfg.Get("htmlReportFile", defaults.HTMLReportFile)), v, renderHTML)
	csvPath = a.writeArtifact(filepath.Join(dir, a.cfg.Get("csvReportFile", defaults.CSVReportFile)), v, renderCSV)

	a.log.Info("reports written", "html", htmlPath, "csv", csvPath)
	return htmlPath, csvPath
}

// writeArtifact renders one file, logging instead of raising on
// failure.
func (a *Aggregator) writeArtifact(path string, v view, render func(io.Writer, view) error) string {
	f, err := os.Create(path)
	if err != nil {
		a.log.Warn("report artifact not created", "path", path, "error", err)
		return ""
	}
	defer f.Close()
	if err := render(f, v); err != nil {
		a.log.Warn("report artifact not rendered", "path", path, "error", err)
		return ""
	}
	return path
}

// csvHeader is the fixed column layout consumers of the CSV expect.
var csvHeader = []string{"Test Name", "Status", "Duration (ms)", "Timestamp", "Screenshot", "Error Message"}

// renderCSV writes the outcome table. encoding/csv handles quoting, so
// commas and quotes in error messages survive round trips.
func renderCSV(w io.Writer, v view) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: csv header: %w", err)
	}
	for _, o := range v.Outcomes {
		row := []string{
			o.Name,
			string(o.Status),
			strconv.FormatInt(o.Duration.Milliseconds(), 10),
			o.Timestamp.Format("2006-01-02 15:04:05"),
			o.Screenshot,
			o.Err,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

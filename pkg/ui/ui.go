// Package ui renders the console run summary.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	severityStyles = map[finding.Severity]lipgloss.Style{
		finding.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		finding.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		finding.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		finding.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		finding.SeverityInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// Summary is the console view of a finished run.
type Summary struct {
	RunID    string
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	Findings []finding.Finding
	HTMLPath string
	CSVPath  string
}

// Render writes the styled summary to w.
func Render(w io.Writer, s Summary) {
	fmt.Fprintln(w, titleStyle.Render("Login Page Test Run"))
	fmt.Fprintln(w, dimStyle.Render("run "+s.RunID))
	fmt.Fprintf(w, "%s  %s  %s  (total %d)\n",
		passStyle.Render(fmt.Sprintf("%d passed", s.Passed)),
		failStyle.Render(fmt.Sprintf("%d failed", s.Failed)),
		skipStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)),
		s.Total)

	if len(s.Findings) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Findings"))
		for _, f := range s.Findings {
			style, ok := severityStyles[f.Severity]
			if !ok {
				style = dimStyle
			}
			fmt.Fprintf(w, "%s %s\n", style.Render(fmt.Sprintf("[%s]", f.Severity)), f.Detail)
		}
	}

	if s.HTMLPath != "" {
		fmt.Fprintln(w, dimStyle.Render("html report: "+s.HTMLPath))
	}
	if s.CSVPath != "" {
		fmt.Fprintln(w, dimStyle.Render("csv report:  "+s.CSVPath))
	}
}

package accessibility

import (
	"fmt"
	"log/slog"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/defaults"
	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
	"github.com/ChandanKT-git/QA-Janitri/pkg/session"
)

// Auditor captures a snapshot from a live page and evaluates it.
type Auditor struct {
	sess *session.Session
	cfg  *config.Store
	log  *slog.Logger
}

// NewAuditor builds an auditor over an existing session.
func NewAuditor(sess *session.Session, cfg *config.Store, log *slog.Logger) *Auditor {
	if log == nil {
		log = slog.Default()
	}
	return &Auditor{sess: sess, cfg: cfg, log: log}
}

// Audit loads the configured page, captures a snapshot and runs every
// check. The second return reports whether the finding count stays
// within the configured threshold. Disabling accessibility testing in
// the configuration yields an empty, passing result.
func (a *Auditor) Audit() ([]finding.Finding, bool, error) {
	if !a.cfg.GetBool("enableAccessibilityTesting", true) {
		a.log.Info("accessibility testing disabled")
		return nil, true, nil
	}
	if err := a.sess.Navigate(a.cfg.BaseURL()); err != nil {
		return nil, false, err
	}
	raw, err := a.sess.Page.Evaluate(snapshotScript)
	if err != nil {
		return nil, false, fmt.Errorf("accessibility: snapshot: %w", err)
	}
	findings := Evaluate(parseSnapshot(raw))
	threshold := a.cfg.GetInt("accessibilityViolationThreshold", defaults.AccessibilityViolationThreshold)
	passed := WithinThreshold(findings, threshold)
	a.log.Info("accessibility audit finished",
		"findings", len(findings),
		"threshold", threshold,
		"passed", passed)
	return findings, passed, nil
}

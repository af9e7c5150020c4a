package security

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/duration"
	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
	"github.com/ChandanKT-git/QA-Janitri/pkg/interact"
	"github.com/ChandanKT-git/QA-Janitri/pkg/locator"
	"github.com/ChandanKT-git/QA-Janitri/pkg/session"
)

// Probe drives payload injection against the login form. Submissions
// are rate limited so the target is paced, not hammered.
type Probe struct {
	sess    *session.Session
	tk      *interact.Toolkit
	cfg     *config.Store
	log     *slog.Logger
	limiter *rate.Limiter
}

// NewProbe builds a probe over an existing session and toolkit.
func NewProbe(sess *session.Session, tk *interact.Toolkit, cfg *config.Store, log *slog.Logger) *Probe {
	if log == nil {
		log = slog.Default()
	}
	return &Probe{
		sess:    sess,
		tk:      tk,
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(duration.ProbeSettle), 1),
	}
}

// submit loads a fresh login page, fills both credential fields with
// the payload and submits the form.
func (p *Probe) submit(ctx context.Context, payload string) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if err := p.sess.Navigate(p.cfg.BaseURL()); err != nil {
		return err
	}
	if err := p.tk.Fill(locator.UserIDInput, payload); err != nil {
		return err
	}
	if err := p.tk.Fill(locator.PasswordInput, payload); err != nil {
		return err
	}
	if err := p.tk.SafeClick(ctx, locator.LoginButton); err != nil {
		return err
	}
	time.Sleep(duration.ProbeSettle)
	return nil
}

// enabled reports whether the probe class identified by flag should
// run. enableSecurityTests is the master switch.
func (p *Probe) enabled(flag string) bool {
	return p.cfg.GetBool("enableSecurityTests", true) && p.cfg.GetBool(flag, true)
}

// recoverPage tries to get the session back onto the login page after
// a payload attempt went wrong. Best effort; the next payload's own
// submit navigates again anyway.
func (p *Probe) recoverPage(payload string, err error) {
	p.log.Warn("payload attempt failed", "payload", payload, "error", err)
	if navErr := p.sess.Navigate(p.cfg.BaseURL()); navErr != nil {
		p.log.Warn("recovery navigation failed", "error", navErr)
	}
}

// runBatch runs attempt for every payload. A failed attempt is handed
// to onFailure and the batch continues; only context cancellation
// stops it early.
func runBatch(ctx context.Context, payloads []string, attempt func(string) error, onFailure func(string, error)) error {
	for _, payload := range payloads {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := attempt(payload); err != nil {
			onFailure(payload, err)
		}
	}
	return nil
}

// ProbeXSS runs the XSS matrix. A fired dialog is a confirmed alert; a
// raw reflection in the page source is a reflected finding. A single
// payload's failure is logged and the batch continues.
func (p *Probe) ProbeXSS(ctx context.Context) ([]finding.Finding, error) {
	if !p.enabled("checkForXssVulnerabilities") {
		p.log.Info("xss probe disabled")
		return nil, nil
	}
	var findings []finding.Finding
	err := runBatch(ctx, XSSPayloads(), func(payload string) error {
		if err := p.submit(ctx, payload); err != nil {
			return err
		}
		if msg, fired := p.sess.ConsumeDialog(); fired {
			findings = append(findings, finding.NewPayload(finding.XSSAlert, "userId,password", payload,
				fmt.Sprintf("dialog fired with message %q", msg)))
			return nil
		}
		source, err := p.sess.Page.Content()
		if err != nil {
			return err
		}
		if PayloadReflected(source, payload) {
			findings = append(findings, finding.NewPayload(finding.XSSReflected, "userId,password", payload,
				"payload reflected unescaped in page source"))
		}
		return nil
	}, p.recoverPage)
	p.log.Info("xss probe finished", "payloads", len(xssPayloads), "findings", len(findings))
	return findings, err
}

// ProbeSQLi runs the SQL injection matrix. Database error signatures
// and apparent authentication bypass both raise findings. A single
// payload's failure is logged and the batch continues.
func (p *Probe) ProbeSQLi(ctx context.Context) ([]finding.Finding, error) {
	if !p.enabled("checkForSqlInjectionVulnerabilities") {
		p.log.Info("sqli probe disabled")
		return nil, nil
	}
	var findings []finding.Finding
	err := runBatch(ctx, SQLiPayloads(), func(payload string) error {
		if err := p.submit(ctx, payload); err != nil {
			return err
		}
		source, err := p.sess.Page.Content()
		if err != nil {
			return err
		}
		if LooksLikeDatabaseError(source) {
			findings = append(findings, finding.NewPayload(finding.SQLInjectionSuspected, "userId,password", payload,
				"database error signature in response"))
			return nil
		}
		if p.escapedLoginPage() {
			findings = append(findings, finding.NewPayload(finding.SQLInjectionSuspected, "userId,password", payload,
				"navigation away from login page suggests authentication bypass"))
		}
		return nil
	}, p.recoverPage)
	p.log.Info("sqli probe finished", "payloads", len(sqliPayloads), "findings", len(findings))
	return findings, err
}

// escapedLoginPage reports whether the session navigated away from the
// login page after a payload submission.
func (p *Probe) escapedLoginPage() bool {
	url := strings.ToLower(p.sess.Page.URL())
	return !strings.Contains(url, "login") && !strings.HasPrefix(url, strings.ToLower(p.cfg.BaseURL()))
}

// AuditCSRF snapshots every form on the login page and flags those
// without a recognizable anti-CSRF token.
func (p *Probe) AuditCSRF(ctx context.Context) ([]finding.Finding, error) {
	if !p.enabled("enableSecurityTests") {
		p.log.Info("csrf audit disabled")
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.sess.Navigate(p.cfg.BaseURL()); err != nil {
		return nil, err
	}
	raw, err := p.sess.Page.Evaluate(formSnapshotScript)
	if err != nil {
		return nil, fmt.Errorf("security: snapshot forms: %w", err)
	}
	forms := parseFormSnapshots(raw)
	var findings []finding.Finding
	for _, form := range forms {
		if !HasAntiCSRFToken(form) {
			findings = append(findings, finding.New(finding.CSRFMissingToken,
				fmt.Sprintf("form %s %s has no anti-CSRF token", strings.ToUpper(form.Method), form.Action)))
		}
	}
	p.log.Info("csrf audit finished", "forms", len(forms), "findings", len(findings))
	return findings, nil
}

const formSnapshotScript = `() => Array.from(document.querySelectorAll('form')).map(f => ({
  action: f.getAttribute('action') || '',
  method: (f.method || 'get').toLowerCase(),
  hidden: Array.from(f.querySelectorAll("input[type='hidden']")).map(i => ({
    name: i.name || '',
    value: i.value || ''
  }))
}))`

// parseFormSnapshots decodes the loosely typed Evaluate result.
func parseFormSnapshots(raw any) []FormSnapshot {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	forms := make([]FormSnapshot, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		form := FormSnapshot{
			Action: stringField(m, "action"),
			Method: stringField(m, "method"),
		}
		if hidden, ok := m["hidden"].([]any); ok {
			for _, h := range hidden {
				hm, ok := h.(map[string]any)
				if !ok {
					continue
				}
				form.Hidden = append(form.Hidden, HiddenInput{
					Name:  stringField(hm, "name"),
					Value: stringField(hm, "value"),
				})
			}
		}
		forms = append(forms, form)
	}
	return forms
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Package interact wraps a live page with the waiting, clicking,
// screenshot and measurement primitives the suites are built on.
package interact

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/defaults"
	"github.com/ChandanKT-git/QA-Janitri/pkg/duration"
	"github.com/ChandanKT-git/QA-Janitri/pkg/locator"
	"github.com/ChandanKT-git/QA-Janitri/pkg/session"
)

// Toolkit provides page-level helpers over one session.
type Toolkit struct {
	page playwright.Page
	cfg  *config.Store
	log  *slog.Logger
	now  func() time.Time
}

// New builds a toolkit bound to the session's page.
func New(s *session.Session, cfg *config.Store, log *slog.Logger) *Toolkit {
	if log == nil {
		log = slog.Default()
	}
	return &Toolkit{page: s.Page, cfg: cfg, log: log, now: time.Now}
}

// WaitVisible blocks until the element is visible or the configured
// timeout elapses.
func (t *Toolkit) WaitVisible(sel locator.Selector) error {
	err := t.page.Locator(sel.String()).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(t.cfg.Timeout().Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("%w: %s not visible: %w", ErrTimeout, sel, err)
	}
	return nil
}

// WaitClickable blocks until the element is visible and enabled.
func (t *Toolkit) WaitClickable(ctx context.Context, sel locator.Selector) error {
	if err := t.WaitVisible(sel); err != nil {
		return err
	}
	deadline := t.now().Add(t.cfg.Timeout())
	loc := t.page.Locator(sel.String())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		enabled, err := loc.IsEnabled()
		if err == nil && enabled {
			return nil
		}
		if t.now().After(deadline) {
			return fmt.Errorf("%w: %s not clickable within %s", ErrTimeout, sel, t.cfg.Timeout())
		}
		time.Sleep(duration.ClickablePoll)
	}
}

// WaitForPageLoad polls document.readyState until it is complete.
func (t *Toolkit) WaitForPageLoad(ctx context.Context) error {
	deadline := t.now().Add(t.cfg.PageLoadTimeout())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		state, err := t.runScript("() => document.readyState")
		if err == nil {
			if s, ok := state.(string); ok && s == "complete" {
				return nil
			}
		}
		if t.now().After(deadline) {
			return fmt.Errorf("%w: page not loaded within %s", ErrTimeout, t.cfg.PageLoadTimeout())
		}
		time.Sleep(duration.ReadyStatePoll)
	}
}

// runScript evaluates script in the page, bounded by the configured
// script timeout. The driver has no script timeout of its own, so the
// bound is enforced here at the evaluation site.
func (t *Toolkit) runScript(script string) (any, error) {
	type result struct {
		v   any
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := t.page.Evaluate(script)
		ch <- result{v, err}
	}()
	timer := time.NewTimer(t.cfg.ScriptTimeout())
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-timer.C:
		return nil, fmt.Errorf("%w: script did not finish within %s", ErrTimeout, t.cfg.ScriptTimeout())
	}
}

// Fill types value into the element after waiting for visibility.
func (t *Toolkit) Fill(sel locator.Selector, value string) error {
	if err := t.WaitVisible(sel); err != nil {
		return err
	}
	if err := t.page.Locator(sel.String()).Fill(value); err != nil {
		return fmt.Errorf("%w: fill %s: %w", ErrInteraction, sel, err)
	}
	return nil
}

// IsPresent reports whether at least one element matches.
func (t *Toolkit) IsPresent(sel locator.Selector) bool {
	n, err := t.page.Locator(sel.String()).Count()
	return err == nil && n > 0
}

// Text returns the element's inner text.
func (t *Toolkit) Text(sel locator.Selector) (string, error) {
	txt, err := t.page.Locator(sel.String()).InnerText()
	if err != nil {
		return "", fmt.Errorf("%w: text %s: %w", ErrInteraction, sel, err)
	}
	return strings.TrimSpace(txt), nil
}

// ScrollTo brings the element into view.
func (t *Toolkit) ScrollTo(sel locator.Selector) error {
	if err := t.page.Locator(sel.String()).ScrollIntoViewIfNeeded(); err != nil {
		return fmt.Errorf("%w: scroll to %s: %w", ErrInteraction, sel, err)
	}
	return nil
}

// Highlight flashes a red border around the element. Best effort, used
// while debugging headful runs.
func (t *Toolkit) Highlight(sel locator.Selector) {
	loc := t.page.Locator(sel.String())
	if _, err := loc.Evaluate("el => { el.style.outline = '3px solid red' }", nil); err != nil {
		return
	}
	time.Sleep(duration.HighlightHold)
	loc.Evaluate("el => { el.style.outline = '' }", nil)
}

// TakeScreenshot captures a full-page PNG into the configured
// screenshot directory, named <testName>_<yyyyMMdd_HHmmss>.png, and
// returns the written path.
func (t *Toolkit) TakeScreenshot(testName string) (string, error) {
	dir := t.cfg.ScreenshotDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("interact: screenshot dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.png", sanitizeName(testName), t.now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if _, err := t.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("%w: screenshot %s: %w", ErrInteraction, testName, err)
	}
	t.log.Debug("screenshot captured", "path", path)
	return path, nil
}

// sanitizeName keeps screenshot filenames filesystem-safe.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "screenshot"
	}
	return b.String()
}

// MeasurePageLoadTime navigates to url and returns the
// navigation-to-load duration as reported by the page's performance
// timing. An empty url measures the already loaded page.
func (t *Toolkit) MeasurePageLoadTime(url string) (time.Duration, error) {
	if url != "" {
		if _, err := t.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
		}); err != nil {
			return 0, fmt.Errorf("%w: navigate %s: %w", ErrInteraction, url, err)
		}
	}
	raw, err := t.runScript("() => { const t = performance.timing; return t.loadEventEnd - t.navigationStart; }")
	if err != nil {
		return 0, fmt.Errorf("measure page load: %w", err)
	}
	ms, ok := asMillis(raw)
	if !ok || ms < 0 {
		return 0, fmt.Errorf("%w: bad load time %v", ErrInteraction, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func asMillis(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// MeetsPerformanceThreshold reports whether the elapsed load time is
// within the configured budget.
func MeetsPerformanceThreshold(cfg *config.Store, elapsed time.Duration) bool {
	budget := cfg.GetInt("performanceThreshold", defaults.PerformanceThresholdMS)
	return elapsed <= time.Duration(budget)*time.Millisecond
}

const alphanum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n random alphanumeric characters.
func RandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanum[rand.IntN(len(alphanum))]
	}
	return string(b)
}

// RandomEmail returns a throwaway test address.
func RandomEmail() string {
	return "test_" + strings.ToLower(RandomString(8)) + "@example.com"
}

// RandomPhone returns a 10-digit number starting with 9.
func RandomPhone() string {
	digits := make([]byte, 10)
	digits[0] = '9'
	for i := 1; i < len(digits); i++ {
		digits[i] = byte('0' + rand.IntN(10))
	}
	return string(digits)
}

package interact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ChandanKT-git/QA-Janitri/pkg/defaults"
	"github.com/ChandanKT-git/QA-Janitri/pkg/locator"
	"github.com/ChandanKT-git/QA-Janitri/pkg/retry"
)

// IsTransientClickError classifies failures worth retrying a direct
// click on. Anything else routes straight to the script fallback.
func IsTransientClickError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"intercepts pointer events",
		"element is not stable",
		"element is not attached",
		"detached",
		"stale",
		"timeout",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// SafeClick clicks the element, retrying direct clicks on transient
// failures and falling back to a script-dispatched click once the
// direct path is exhausted or fails non-transiently.
func (t *Toolkit) SafeClick(ctx context.Context, sel locator.Selector) error {
	if err := t.WaitClickable(ctx, sel); err != nil {
		return err
	}
	loc := t.page.Locator(sel.String())
	direct := func() error { return loc.Click() }
	script := func() error {
		_, err := loc.Evaluate("el => el.click()", nil)
		return err
	}
	return safeClick(ctx, retry.Config{
		MaxAttempts: defaults.SafeClickAttempts,
		Delay:       t.cfg.Timeout() / 20,
	}, direct, script, IsTransientClickError)
}

// safeClick is the click state machine. Each attempt either succeeds,
// classifies as transient and retries, or stops the direct path. A
// single script click is the terminal fallback; its error is final.
func safeClick(ctx context.Context, cfg retry.Config, direct, script func() error, transient func(error) bool) error {
	err := retry.Do(ctx, cfg, func(int) error {
		clickErr := direct()
		if clickErr == nil {
			return nil
		}
		if transient(clickErr) {
			return clickErr
		}
		return retry.Stop(clickErr)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if scriptErr := script(); scriptErr != nil {
		return fmt.Errorf("%w: click failed (%v); script fallback: %w", ErrInteraction, err, scriptErr)
	}
	return nil
}

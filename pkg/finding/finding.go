// Package finding defines the structured issue record produced by the
// security probes and the accessibility auditor.
package finding

import (
	"fmt"
	"time"
)

// Kind identifies the class of issue a finding reports.
type Kind string

const (
	// XSSAlert means an injected payload triggered a JavaScript dialog.
	XSSAlert Kind = "xss-alert"
	// XSSReflected means a payload appeared unescaped in the page source.
	XSSReflected Kind = "xss-reflected"
	// SQLInjectionSuspected means a SQLi payload produced a database
	// error signature or an anomalous response.
	SQLInjectionSuspected Kind = "sqli-suspected"
	// CSRFMissingToken means a form carries no recognizable anti-CSRF
	// hidden input.
	CSRFMissingToken Kind = "csrf-missing-token"

	// MissingAltText means an image lacks alt text.
	MissingAltText Kind = "a11y-missing-alt"
	// MissingLabel means a non-hidden input has no label, aria-label,
	// aria-labelledby or placeholder.
	MissingLabel Kind = "a11y-missing-label"
	// LowContrast means an element pairs identical foreground and
	// background colors.
	LowContrast Kind = "a11y-low-contrast"
	// MissingLang means the html element has no lang attribute.
	MissingLang Kind = "a11y-missing-lang"
	// MissingTitle means the document title is empty.
	MissingTitle Kind = "a11y-missing-title"
	// KeyboardTrap means an interactive element opts out of the tab
	// order with tabindex="-1".
	KeyboardTrap Kind = "a11y-keyboard-trap"
	// ClickWithoutKeyboard means a non-interactive element reacts to
	// clicks but has no keyboard handler.
	ClickWithoutKeyboard Kind = "a11y-click-no-keyboard"
	// PositiveTabIndex means an element forces a tab order with a
	// positive tabindex.
	PositiveTabIndex Kind = "a11y-positive-tabindex"
)

// DefaultSeverity maps each kind to its baseline severity.
func DefaultSeverity(k Kind) Severity {
	switch k {
	case XSSAlert, SQLInjectionSuspected:
		return SeverityCritical
	case XSSReflected, CSRFMissingToken:
		return SeverityHigh
	case KeyboardTrap, ClickWithoutKeyboard:
		return SeverityMedium
	case MissingAltText, MissingLabel, LowContrast, MissingLang, MissingTitle, PositiveTabIndex:
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// Finding is one detected issue.
type Finding struct {
	Kind     Kind      `json:"kind"`
	Severity Severity  `json:"severity"`
	Field    string    `json:"field,omitempty"`
	Payload  string    `json:"payload,omitempty"`
	Detail   string    `json:"detail"`
	Detected time.Time `json:"detected"`
}

// New builds a finding for kind with its default severity.
func New(k Kind, detail string) Finding {
	return Finding{
		Kind:     k,
		Severity: DefaultSeverity(k),
		Detail:   detail,
		Detected: time.Now(),
	}
}

// NewPayload builds a finding tied to a specific input field and payload.
func NewPayload(k Kind, field, payload, detail string) Finding {
	f := New(k, detail)
	f.Field = field
	f.Payload = payload
	return f
}

// String renders a single-line summary.
func (f Finding) String() string {
	if f.Field != "" {
		return fmt.Sprintf("[%s] %s field=%s: %s", f.Severity, f.Kind, f.Field, f.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Kind, f.Detail)
}

// CountBySeverity tallies findings per severity level.
func CountBySeverity(findings []Finding) map[Severity]int {
	counts := make(map[Severity]int, len(findings))
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// MaxSeverity returns the highest severity present, or SeverityInfo
// for an empty slice.
func MaxSeverity(findings []Finding) Severity {
	max := SeverityInfo
	for _, f := range findings {
		if f.Severity > max {
			max = f.Severity
		}
	}
	return max
}

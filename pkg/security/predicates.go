package security

import (
	"html"
	"strings"
)

// PayloadReflected reports whether payload appears verbatim in the
// page source. The HTML-escaped rendering of the payload does not
// count; an escaped reflection is the page defending itself.
func PayloadReflected(pageSource, payload string) bool {
	if payload == "" {
		return false
	}
	if !strings.Contains(pageSource, payload) {
		return false
	}
	escaped := html.EscapeString(payload)
	if escaped != payload && strings.Contains(pageSource, escaped) {
		// Both forms present: strip escaped occurrences and re-check.
		stripped := strings.ReplaceAll(pageSource, escaped, "")
		return strings.Contains(stripped, payload)
	}
	return true
}

// dbErrorSignatures are substrings that betray a database error page.
var dbErrorSignatures = []string{
	"sql syntax",
	"syntax error",
	"mysql",
	"postgresql",
	"sqlite",
	"ora-",
	"odbc",
	"jdbc",
	"unclosed quotation mark",
	"database error",
}

// LooksLikeDatabaseError reports whether text carries a database error
// signature.
func LooksLikeDatabaseError(text string) bool {
	lower := strings.ToLower(text)
	for _, sig := range dbErrorSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// HiddenInput is one hidden form field captured from the page.
type HiddenInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FormSnapshot is the CSRF-relevant shape of one form.
type FormSnapshot struct {
	Action string        `json:"action"`
	Method string        `json:"method"`
	Hidden []HiddenInput `json:"hidden"`
}

// csrfTokenMarkers are substrings a token field name is expected to
// contain.
var csrfTokenMarkers = []string{"csrf", "token", "authenticity", "nonce", "_verif"}

// HasAntiCSRFToken reports whether the form carries a hidden input
// whose name looks like an anti-CSRF token. The name alone decides;
// token values are opaque to the page.
func HasAntiCSRFToken(form FormSnapshot) bool {
	for _, in := range form.Hidden {
		name := strings.ToLower(in.Name)
		for _, marker := range csrfTokenMarkers {
			if strings.Contains(name, marker) {
				return true
			}
		}
	}
	return false
}

// Package security probes the login form with XSS, SQL injection and
// CSRF checks. Payload injection drives the live page; classification
// runs as pure predicates over captured snapshots so it stays
// testable without a browser.
package security

// xssPayloads covers script tags, event handlers, javascript: URLs and
// attribute breakouts.
var xssPayloads = []string{
	`<script>alert('XSS')</script>`,
	`<img src=x onerror=alert('XSS')>`,
	`javascript:alert('XSS')`,
	`<svg/onload=alert('XSS')>`,
	`'"><script>alert('XSS')</script>`,
}

// sqliPayloads covers tautologies, comment truncation and stacked
// statements.
var sqliPayloads = []string{
	`' OR '1'='1`,
	`' OR '1'='1' --`,
	`admin' --`,
	`1' OR '1' = '1`,
	`1'; DROP TABLE users; --`,
}

// XSSPayloads returns a copy of the cross-site scripting matrix.
func XSSPayloads() []string {
	out := make([]string, len(xssPayloads))
	copy(out, xssPayloads)
	return out
}

// SQLiPayloads returns a copy of the SQL injection matrix.
func SQLiPayloads() []string {
	out := make([]string, len(sqliPayloads))
	copy(out, sqliPayloads)
	return out
}

package finding

import "strings"

// Severity ranks how serious a finding is.
type Severity int

const (
	// SeverityInfo marks observations with no direct risk.
	SeverityInfo Severity = iota
	// SeverityLow marks minor issues.
	SeverityLow
	// SeverityMedium marks issues that degrade quality or hint at risk.
	SeverityMedium
	// SeverityHigh marks likely exploitable or blocking issues.
	SeverityHigh
	// SeverityCritical marks confirmed exploitable issues.
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "info",
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSeverity converts a name back into a Severity. Unknown names
// map to SeverityInfo.
func ParseSeverity(name string) Severity {
	name = strings.ToLower(strings.TrimSpace(name))
	for sev, n := range severityNames {
		if n == name {
			return sev
		}
	}
	return SeverityInfo
}

// AtLeast reports whether s is at or above min.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}

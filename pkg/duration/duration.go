// Package duration provides canonical time constants for the harness.
// Reference these instead of scattering hardcoded time.Duration values
// through the codebase.
package duration

import "time"

const (
	// ElementWait is the default explicit-wait budget for a single
	// element condition (10s), matching the `timeout` config key.
	ElementWait = 10 * time.Second

	// PageLoad is the default page-load timeout (30s), matching the
	// `pageLoadTimeout` config key.
	PageLoad = 30 * time.Second

	// Script is the default script-execution timeout (30s), matching
	// the `scriptTimeout` config key.
	Script = 30 * time.Second

	// ReadyStatePoll is the interval between document.readyState
	// probes while waiting for a page load.
	ReadyStatePoll = 250 * time.Millisecond

	// ClickablePoll is the interval between enabled-state probes while
	// waiting for an element to become clickable.
	ClickablePoll = 100 * time.Millisecond

	// HighlightHold is how long a debug highlight stays visible.
	HighlightHold = 500 * time.Millisecond

	// SessionLaunch bounds browser process startup.
	SessionLaunch = 60 * time.Second

	// ProbeSettle is the pause after injecting a payload before the
	// page is inspected for a reaction.
	ProbeSettle = 300 * time.Millisecond
)

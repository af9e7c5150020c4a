// Package defaults centralizes fallback values used when no
// configuration tier supplies an explicit setting.
package defaults

const (
	// Browser is the engine launched when the `browser` key is absent.
	Browser = "chrome"

	// BaseURL is the login page under test.
	BaseURL = "https://dev-dash.janitri.in/"

	// TimeoutSeconds is the explicit-wait budget in seconds.
	TimeoutSeconds = 10

	// PageLoadTimeoutSeconds bounds full page loads.
	PageLoadTimeoutSeconds = 30

	// ScriptTimeoutSeconds bounds injected script execution.
	ScriptTimeoutSeconds = 30

	// Headless controls whether the browser runs without a window.
	Headless = false

	// ScreenshotOnFailure captures a screenshot when a case fails.
	ScreenshotOnFailure = true

	// ReportDir is where generated artifacts land.
	ReportDir = "reports"

	// HTMLReportFile is the HTML report filename inside ReportDir.
	HTMLReportFile = "TestReport.html"

	// CSVReportFile is the CSV report filename inside ReportDir.
	CSVReportFile = "TestResults.csv"

	// ScreenshotDir is where failure screenshots land.
	ScreenshotDir = "screenshots"

	// PerformanceThresholdMS is the page-load budget in milliseconds
	// used by performance assertions.
	PerformanceThresholdMS = 5000

	// AccessibilityViolationThreshold is the maximum number of
	// accessibility findings tolerated before an audit fails. Zero
	// means any finding fails the audit.
	AccessibilityViolationThreshold = 0

	// SafeClickAttempts bounds the click state machine.
	SafeClickAttempts = 3
)

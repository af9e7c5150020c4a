// Package locator holds the selector vocabulary for the login page.
// Selectors use Playwright's engine syntax; CSS is the default, and
// xpath= prefixes explicit XPath expressions.
package locator

// Selector names one element on the page under test.
type Selector string

// String returns the raw selector expression.
func (s Selector) String() string { return string(s) }

// Login page elements.
const (
	UserIDInput              Selector = "#userId"
	PasswordInput            Selector = "#password"
	LoginButton              Selector = "xpath=//button[contains(text(), 'Login')]"
	PasswordVisibilityToggle Selector = "xpath=//button[contains(@class, 'password-toggle') or contains(@class, 'eye-icon')]"
	ErrorMessage             Selector = "xpath=//div[contains(@class, 'error-message') or contains(@class, 'alert')]"
	PageTitle                Selector = "xpath=//h1[contains(text(), 'Janitri') or contains(text(), 'Login')]"
	ForgotPasswordLink       Selector = "xpath=//a[contains(text(), 'Forgot') and contains(text(), 'Password')]"
	RememberMeCheckbox       Selector = "xpath=//input[@type='checkbox'][contains(@id, 'remember') or contains(@name, 'remember')]"
	SignUpLink               Selector = "xpath=//a[contains(text(), 'Sign up') or contains(text(), 'Register') or contains(text(), 'Create account')]"
	LoginForm                Selector = "xpath=//form[.//input[@id='userId'] or .//input[@id='password']]"
)

// Generic selectors used by the audits and probes.
const (
	Body            Selector = "body"
	AllImages       Selector = "img"
	AllForms        Selector = "form"
	FormFields      Selector = "input:not([type='hidden']), select, textarea"
	TabIndexed      Selector = "[tabindex]"
	DatabaseError   Selector = "xpath=//*[contains(text(), 'SQL') or contains(text(), 'syntax') or contains(text(), 'database')]"
	LoginRejected   Selector = "xpath=//div[contains(text(), 'Invalid credentials') or contains(text(), 'Login failed')]"
	CaptchaPresence Selector = "xpath=//*[contains(@class, 'captcha') or contains(@id, 'captcha')]"
)

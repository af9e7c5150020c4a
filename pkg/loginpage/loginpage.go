// Package loginpage is the page object for the login form under test.
package loginpage

import (
	"context"
	"fmt"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/interact"
	"github.com/ChandanKT-git/QA-Janitri/pkg/locator"
	"github.com/ChandanKT-git/QA-Janitri/pkg/session"
)

// Page drives the login form.
type Page struct {
	sess *session.Session
	tk   *interact.Toolkit
	cfg  *config.Store
}

// New binds the page object to a session.
func New(sess *session.Session, tk *interact.Toolkit, cfg *config.Store) *Page {
	return &Page{sess: sess, tk: tk, cfg: cfg}
}

// Open navigates to the login page and waits for it to settle.
func (p *Page) Open(ctx context.Context) error {
	if err := p.sess.Navigate(p.cfg.BaseURL()); err != nil {
		return err
	}
	return p.tk.WaitForPageLoad(ctx)
}

// EnterUserID fills the user id field.
func (p *Page) EnterUserID(value string) error {
	return p.tk.Fill(locator.UserIDInput, value)
}

// EnterPassword fills the password field.
func (p *Page) EnterPassword(value string) error {
	return p.tk.Fill(locator.PasswordInput, value)
}

// ClickLogin submits the form.
func (p *Page) ClickLogin(ctx context.Context) error {
	return p.tk.SafeClick(ctx, locator.LoginButton)
}

// Login runs the full credential flow.
func (p *Page) Login(ctx context.Context, userID, password string) error {
	if err := p.EnterUserID(userID); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.ClickLogin(ctx)
}

// TogglePasswordVisibility clicks the eye icon.
func (p *Page) TogglePasswordVisibility(ctx context.Context) error {
	return p.tk.SafeClick(ctx, locator.PasswordVisibilityToggle)
}

// PasswordMasked reports whether the password field still has
// type="password".
func (p *Page) PasswordMasked() (bool, error) {
	attr, err := p.sess.Page.Locator(locator.PasswordInput.String()).GetAttribute("type")
	if err != nil {
		return false, fmt.Errorf("loginpage: password type: %w", err)
	}
	return attr == "password", nil
}

// LoginButtonEnabled reports whether the submit button accepts clicks.
func (p *Page) LoginButtonEnabled() (bool, error) {
	enabled, err := p.sess.Page.Locator(locator.LoginButton.String()).IsEnabled()
	if err != nil {
		return false, fmt.Errorf("loginpage: button state: %w", err)
	}
	return enabled, nil
}

// ErrorMessage waits for and returns the validation error text.
func (p *Page) ErrorMessage() (string, error) {
	if err := p.tk.WaitVisible(locator.ErrorMessage); err != nil {
		return "", err
	}
	return p.tk.Text(locator.ErrorMessage)
}

// Loaded reports whether the form's core elements are present.
func (p *Page) Loaded() bool {
	return p.tk.IsPresent(locator.UserIDInput) &&
		p.tk.IsPresent(locator.PasswordInput) &&
		p.tk.IsPresent(locator.LoginButton)
}

// HasForgotPasswordLink reports whether the recovery link renders.
func (p *Page) HasForgotPasswordLink() bool {
	return p.tk.IsPresent(locator.ForgotPasswordLink)
}

// HasCaptcha reports whether a captcha widget guards the form.
func (p *Page) HasCaptcha() bool {
	return p.tk.IsPresent(locator.CaptchaPresence)
}

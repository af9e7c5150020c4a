package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChandanKT-git/QA-Janitri/pkg/accessibility"
	"github.com/ChandanKT-git/QA-Janitri/pkg/defaults"
	"github.com/ChandanKT-git/QA-Janitri/pkg/finding"
	"github.com/ChandanKT-git/QA-Janitri/pkg/interact"
	"github.com/ChandanKT-git/QA-Janitri/pkg/loginpage"
	"github.com/ChandanKT-git/QA-Janitri/pkg/report"
	"github.com/ChandanKT-git/QA-Janitri/pkg/security"
	"github.com/ChandanKT-git/QA-Janitri/pkg/session"
	"github.com/ChandanKT-git/QA-Janitri/pkg/suite"
)

// suitesFor assembles the selected suites into a flat case list.
func suitesFor(names []string, agg *report.Aggregator) ([]suite.Case, error) {
	var cases []suite.Case
	for _, name := range names {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "functional":
			cases = append(cases, functionalCases()...)
		case "security":
			cases = append(cases, securityCases(agg)...)
		case "accessibility":
			cases = append(cases, accessibilityCases(agg)...)
		case "performance":
			cases = append(cases, performanceCases()...)
		case "responsive":
			cases = append(cases, responsiveCases()...)
		case "":
		default:
			return nil, fmt.Errorf("unknown suite %q", name)
		}
	}
	return cases, nil
}

func openLogin(ctx context.Context, env *suite.Env) (*loginpage.Page, error) {
	page := loginpage.New(env.Session, env.Toolkit, env.Config)
	if err := page.Open(ctx); err != nil {
		return nil, err
	}
	return page, nil
}

func functionalCases() []suite.Case {
	return []suite.Case{
		{
			Name: "LoginPageLoads",
			Run: func(ctx context.Context, env *suite.Env) error {
				page, err := openLogin(ctx, env)
				if err != nil {
					return err
				}
				if !page.Loaded() {
					return fmt.Errorf("login form elements missing")
				}
				return nil
			},
		},
		{
			Name: "LoginButtonStateWithEmptyFields",
			Run: func(ctx context.Context, env *suite.Env) error {
				page, err := openLogin(ctx, env)
				if err != nil {
					return err
				}
				if err := page.EnterUserID(""); err != nil {
					return err
				}
				if err := page.EnterPassword(""); err != nil {
					return err
				}
				enabled, err := page.LoginButtonEnabled()
				if err != nil {
					return err
				}
				env.Log.Info("login button state with empty fields", "enabled", enabled)
				return nil
			},
		},
		{
			Name: "InvalidCredentialsShowError",
			Run: func(ctx context.Context, env *suite.Env) error {
				page, err := openLogin(ctx, env)
				if err != nil {
					return err
				}
				if page.HasCaptcha() {
					return suite.Skip("captcha guards the form")
				}
				if err := page.Login(ctx, env.Config.Get("invalidEmail", ""), env.Config.Get("invalidPassword", "")); err != nil {
					return err
				}
				msg, err := page.ErrorMessage()
				if err != nil {
					return fmt.Errorf("no error message after invalid login: %w", err)
				}
				env.Log.Info("invalid login rejected", "message", msg)
				return nil
			},
		},
		{
			Name: "PasswordMaskingToggle",
			Run: func(ctx context.Context, env *suite.Env) error {
				page, err := openLogin(ctx, env)
				if err != nil {
					return err
				}
				if err := page.EnterPassword("Secret@123"); err != nil {
					return err
				}
				masked, err := page.PasswordMasked()
				if err != nil {
					return err
				}
				if !masked {
					return fmt.Errorf("password visible before toggle")
				}
				if err := page.TogglePasswordVisibility(ctx); err != nil {
					return err
				}
				masked, err = page.PasswordMasked()
				if err != nil {
					return err
				}
				if masked {
					return fmt.Errorf("toggle did not reveal password")
				}
				return nil
			},
		},
		{
			Name: "RandomCredentialsRejected",
			Run: func(ctx context.Context, env *suite.Env) error {
				page, err := openLogin(ctx, env)
				if err != nil {
					return err
				}
				if err := page.Login(ctx, interact.RandomEmail(), interact.RandomString(12)); err != nil {
					return err
				}
				if _, err := page.ErrorMessage(); err != nil {
					return fmt.Errorf("random credentials were not rejected: %w", err)
				}
				return nil
			},
		},
	}
}

func securityCases(agg *report.Aggregator) []suite.Case {
	return []suite.Case{
		{
			Name: "XSSInjectionMatrix",
			Run: func(ctx context.Context, env *suite.Env) error {
				probe := security.NewProbe(env.Session, env.Toolkit, env.Config, env.Log)
				findings, err := probe.ProbeXSS(ctx)
				agg.RecordFindings(findings)
				if err != nil {
					return err
				}
				if finding.MaxSeverity(findings).AtLeast(finding.SeverityCritical) {
					return fmt.Errorf("confirmed XSS: %d findings", len(findings))
				}
				return nil
			},
		},
		{
			Name: "SQLInjectionMatrix",
			Run: func(ctx context.Context, env *suite.Env) error {
				probe := security.NewProbe(env.Session, env.Toolkit, env.Config, env.Log)
				findings, err := probe.ProbeSQLi(ctx)
				agg.RecordFindings(findings)
				if err != nil {
					return err
				}
				if len(findings) > 0 {
					return fmt.Errorf("SQL injection suspected: %d findings", len(findings))
				}
				return nil
			},
		},
		{
			Name: "CSRFTokenAudit",
			Run: func(ctx context.Context, env *suite.Env) error {
				probe := security.NewProbe(env.Session, env.Toolkit, env.Config, env.Log)
				findings, err := probe.AuditCSRF(ctx)
				agg.RecordFindings(findings)
				if err != nil {
					return err
				}
				if len(findings) > 0 {
					return fmt.Errorf("forms without anti-CSRF tokens: %d", len(findings))
				}
				return nil
			},
		},
	}
}

func accessibilityCases(agg *report.Aggregator) []suite.Case {
	return []suite.Case{
		{
			Name: "AccessibilityAudit",
			Run: func(ctx context.Context, env *suite.Env) error {
				auditor := accessibility.NewAuditor(env.Session, env.Config, env.Log)
				findings, passed, err := auditor.Audit()
				agg.RecordFindings(findings)
				if err != nil {
					return err
				}
				if !passed {
					return fmt.Errorf("%d accessibility findings exceed the threshold", len(findings))
				}
				return nil
			},
		},
	}
}

func performanceCases() []suite.Case {
	return []suite.Case{
		{
			Name: "PageLoadWithinBudget",
			Run: func(ctx context.Context, env *suite.Env) error {
				elapsed, err := env.Toolkit.MeasurePageLoadTime(env.Config.BaseURL())
				if err != nil {
					return err
				}
				if !interact.MeetsPerformanceThreshold(env.Config, elapsed) {
					return fmt.Errorf("page loaded in %s, over the %dms budget",
						elapsed, env.Config.GetInt("performanceThreshold", defaults.PerformanceThresholdMS))
				}
				env.Log.Info("page load measured", "elapsed", elapsed)
				return nil
			},
		},
	}
}

func responsiveCases() []suite.Case {
	devices, err := session.Devices()
	if err != nil {
		return []suite.Case{{
			Name: "ResponsiveLayout",
			Run: func(context.Context, *suite.Env) error {
				return fmt.Errorf("device catalog: %w", err)
			},
		}}
	}

	cases := make([]suite.Case, 0, len(devices))
	for _, d := range devices {
		device := d
		cases = append(cases, suite.Case{
			Name:           "ResponsiveLayout_" + strings.ReplaceAll(device.Name, " ", ""),
			SessionOptions: session.Options{Device: &device},
			Run: func(ctx context.Context, env *suite.Env) error {
				page, err := openLogin(ctx, env)
				if err != nil {
					return err
				}
				if !page.Loaded() {
					return fmt.Errorf("login form broken at %dx%d", device.Width, device.Height)
				}
				return nil
			},
		})
	}
	return cases
}

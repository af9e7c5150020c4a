// Package session manages browser lifecycles over Playwright. A
// Factory owns the driver process and launches isolated sessions, each
// with its own browser context and page.
package session

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/duration"
)

// Engine names a supported browser engine.
type Engine string

const (
	EngineChromium Engine = "chromium"
	EngineFirefox  Engine = "firefox"
	EngineWebKit   Engine = "webkit"
	EngineEdge     Engine = "edge"
)

// ParseEngine maps user-facing browser names onto engines. Chrome and
// chromium share one engine; edge is chromium launched on the msedge
// channel; gecko is an alias for firefox; safari for webkit.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "chrome", "chromium":
		return EngineChromium, nil
	case "firefox", "gecko":
		return EngineFirefox, nil
	case "edge", "msedge":
		return EngineEdge, nil
	case "safari", "webkit":
		return EngineWebKit, nil
	default:
		return "", fmt.Errorf("session: unsupported browser %q", name)
	}
}

// CreationError reports a failed session launch. Callers can unwrap
// it to reach the driver's underlying error.
type CreationError struct {
	Engine Engine
	Err    error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("session: create %s session: %v", e.Engine, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// chromiumHardening disables browser chrome that interferes with
// automated runs.
var chromiumHardening = []string{
	"--disable-notifications",
	"--disable-popup-blocking",
	"--disable-infobars",
	"--disable-extensions",
}

// Factory launches sessions against a shared Playwright driver.
type Factory struct {
	pw  *playwright.Playwright
	cfg *config.Store
	log *slog.Logger
}

// NewFactory starts the Playwright driver. Callers own the returned
// factory and must Close it.
func NewFactory(cfg *config.Store, log *slog.Logger) (*Factory, error) {
	if log == nil {
		log = slog.Default()
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("session: start driver: %w", err)
	}
	return &Factory{pw: pw, cfg: cfg, log: log}, nil
}

// Close stops the driver. Sessions must be closed first.
func (f *Factory) Close() error {
	return f.pw.Stop()
}

// Options tunes a single session.
type Options struct {
	// Engine overrides the configured browser.
	Engine Engine
	// Device applies an emulation profile when non-nil.
	Device *Device
	// Headless overrides the configured headless setting when non-nil.
	Headless *bool
}

// Session is one live browser page with its context and dialog state.
type Session struct {
	Browser playwright.Browser
	Context playwright.BrowserContext
	Page    playwright.Page

	log *slog.Logger

	// ScriptTimeout bounds injected script execution for this session.
	ScriptTimeout time.Duration

	closeOnce sync.Once
	closeErr  error

	mu         sync.Mutex
	lastDialog string
	sawDialog  bool
}

// New launches a session. The page inherits the configured element,
// navigation and script timeouts, and a dialog listener accepts and
// records any JavaScript dialog so probes can inspect it later.
// Without a device profile the viewport is fixed at 1920x1080; the
// emulateDevice and deviceName config keys select a profile when the
// caller does not pass one.
func (f *Factory) New(opts Options) (*Session, error) {
	engine := opts.Engine
	if engine == "" {
		parsed, err := ParseEngine(f.cfg.Browser())
		if err != nil {
			return nil, err
		}
		engine = parsed
	}

	if opts.Device == nil {
		device, err := deviceFromConfig(f.cfg)
		if err != nil {
			return nil, &CreationError{Engine: engine, Err: err}
		}
		opts.Device = device
	}

	headless := f.cfg.Headless()
	if opts.Headless != nil {
		headless = *opts.Headless
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Timeout:  playwright.Float(float64(duration.SessionLaunch.Milliseconds())),
	}

	var bt playwright.BrowserType
	switch engine {
	case EngineChromium:
		bt = f.pw.Chromium
		launch.Args = chromiumHardening
	case EngineEdge:
		bt = f.pw.Chromium
		launch.Args = chromiumHardening
		launch.Channel = playwright.String("msedge")
	case EngineFirefox:
		bt = f.pw.Firefox
	case EngineWebKit:
		bt = f.pw.WebKit
	default:
		return nil, fmt.Errorf("session: unsupported engine %q", engine)
	}

	browser, err := bt.Launch(launch)
	if err != nil {
		return nil, &CreationError{Engine: engine, Err: err}
	}

	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	}
	if d := opts.Device; d != nil {
		ctxOpts.Viewport = &playwright.Size{Width: d.Width, Height: d.Height}
		ctxOpts.IsMobile = playwright.Bool(d.IsMobile)
		ctxOpts.HasTouch = playwright.Bool(d.HasTouch)
		if d.DeviceScaleFactor > 0 {
			ctxOpts.DeviceScaleFactor = playwright.Float(d.DeviceScaleFactor)
		}
		if d.UserAgent != "" {
			ctxOpts.UserAgent = playwright.String(d.UserAgent)
		}
	}

	bctx, err := browser.NewContext(ctxOpts)
	if err != nil {
		browser.Close()
		return nil, &CreationError{Engine: engine, Err: err}
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		browser.Close()
		return nil, &CreationError{Engine: engine, Err: err}
	}

	page.SetDefaultTimeout(float64(f.cfg.Timeout().Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(f.cfg.PageLoadTimeout().Milliseconds()))

	s := &Session{
		Browser:       browser,
		Context:       bctx,
		Page:          page,
		ScriptTimeout: f.cfg.ScriptTimeout(),
		log:           f.log,
	}
	page.OnDialog(func(d playwright.Dialog) {
		s.mu.Lock()
		s.lastDialog = d.Message()
		s.sawDialog = true
		s.mu.Unlock()
		s.log.Debug("dialog accepted", "message", d.Message())
		if err := d.Accept(); err != nil {
			s.log.Warn("dialog accept failed", "error", err)
		}
	})

	f.log.Info("session started",
		"engine", string(engine),
		"headless", headless,
		"device", deviceName(opts.Device))
	return s, nil
}

func deviceName(d *Device) string {
	if d == nil {
		return "default"
	}
	return d.Name
}

// Navigate loads the given URL and waits for the load event.
func (s *Session) Navigate(url string) error {
	if _, err := s.Page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("session: navigate %s: %w", url, err)
	}
	return nil
}

// ConsumeDialog returns the most recent dialog message and clears it.
// The second return reports whether a dialog fired since the last call.
func (s *Session) ConsumeDialog() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, saw := s.lastDialog, s.sawDialog
	s.lastDialog, s.sawDialog = "", false
	return msg, saw
}

// Close tears down the page, context and browser in order, exactly
// once. The first error wins but teardown continues; repeated calls
// return the first call's result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := s.Page.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
		if err := s.Context.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
		if err := s.Browser.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
	})
	return s.closeErr
}

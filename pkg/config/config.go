// Package config implements the layered configuration store backing the
// harness. Resolution order for a key, highest precedence first:
//
//  1. QA_<KEY> environment variable (dots become underscores)
//  2. properties file passed to Load
//  3. embedded default_config.properties
//  4. the hardcoded fallback supplied at the call site
package config

import (
	"bufio"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "embed"

	"github.com/ChandanKT-git/QA-Janitri/pkg/defaults"
)

//go:embed default_config.properties
var embeddedDefaults string

// Store resolves configuration keys across the layered sources. The
// zero value is not usable; construct one with Load or New.
type Store struct {
	file      map[string]string
	embedded  map[string]string
	lookupEnv func(string) (string, bool)
}

// New returns a store backed only by the embedded defaults and the
// environment.
func New() *Store {
	return &Store{
		file:      map[string]string{},
		embedded:  parseProperties(embeddedDefaults),
		lookupEnv: os.LookupEnv,
	}
}

// Load reads a properties file and layers it over the embedded
// defaults. An unreadable file is logged and skipped; resolution falls
// through to the remaining tiers. Pass an empty path to skip the file
// tier entirely.
func Load(path string) *Store {
	s := New()
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config file skipped", "path", path, "error", err)
		return s
	}
	s.file = parseProperties(string(data))
	return s
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store, loading the file named by
// the QA_CONFIG_FILE environment variable if set. Intended only for
// entry points; library code should accept a *Store.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = Load(os.Getenv("QA_CONFIG_FILE"))
	})
	return defaultStore
}

// envKey maps a properties key to its environment override name.
func envKey(key string) string {
	return "QA_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Get resolves key through the tiers, returning fallback when no tier
// defines it.
func (s *Store) Get(key, fallback string) string {
	if v, ok := s.lookupEnv(envKey(key)); ok {
		return v
	}
	if v, ok := s.file[key]; ok {
		return v
	}
	if v, ok := s.embedded[key]; ok {
		return v
	}
	return fallback
}

// GetInt resolves key as an integer. Unparseable values fall through
// to fallback.
func (s *Store) GetInt(key string, fallback int) int {
	raw := s.Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

// GetBool resolves key as a boolean. Unparseable values fall through
// to fallback.
func (s *Store) GetBool(key string, fallback bool) bool {
	raw := s.Get(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return b
}

// GetDuration resolves key as a whole number of seconds.
func (s *Store) GetDuration(key string, fallback time.Duration) time.Duration {
	raw := s.Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

// Browser returns the configured engine name.
func (s *Store) Browser() string { return s.Get("browser", defaults.Browser) }

// BaseURL returns the page under test.
func (s *Store) BaseURL() string { return s.Get("baseUrl", defaults.BaseURL) }

// Timeout returns the explicit-wait budget.
func (s *Store) Timeout() time.Duration {
	return s.GetDuration("timeout", time.Duration(defaults.TimeoutSeconds)*time.Second)
}

// PageLoadTimeout bounds full page loads.
func (s *Store) PageLoadTimeout() time.Duration {
	return s.GetDuration("pageLoadTimeout", time.Duration(defaults.PageLoadTimeoutSeconds)*time.Second)
}

// ScriptTimeout bounds injected script execution.
func (s *Store) ScriptTimeout() time.Duration {
	return s.GetDuration("scriptTimeout", time.Duration(defaults.ScriptTimeoutSeconds)*time.Second)
}

// Headless reports whether the browser runs without a window.
func (s *Store) Headless() bool { return s.GetBool("headless", defaults.Headless) }

// ScreenshotOnFailure reports whether failed cases capture screenshots.
func (s *Store) ScreenshotOnFailure() bool {
	return s.GetBool("screenshotOnFailure", defaults.ScreenshotOnFailure)
}

// ReportDir returns the artifact output directory.
func (s *Store) ReportDir() string { return s.Get("reportDir", defaults.ReportDir) }

// ScreenshotDir returns the screenshot output directory.
func (s *Store) ScreenshotDir() string { return s.Get("screenshotDir", defaults.ScreenshotDir) }

// parseProperties decodes Java-style key=value lines. Blank lines and
// lines starting with # or ! are skipped. Values keep interior
// whitespace but are trimmed at the edges.
func parseProperties(src string) map[string]string {
	props := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		props[key] = strings.TrimSpace(value)
	}
	return props
}

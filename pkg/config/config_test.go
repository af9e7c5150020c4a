package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProps(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileFallsThrough(t *testing.T) {
	t.Parallel()

	s := Load(filepath.Join(t.TempDir(), "nope.properties"))
	require.NotNil(t, s)
	s.lookupEnv = func(string) (string, bool) { return "", false }

	// Remaining tiers still resolve.
	assert.Equal(t, "chrome", s.Browser())
	assert.Equal(t, "https://dev-dash.janitri.in/", s.BaseURL())
}

func TestResolutionOrder(t *testing.T) {
	path := writeProps(t, "browser=firefox\ntimeout=20\n")

	s := Load(path)

	// File tier beats embedded defaults.
	assert.Equal(t, "firefox", s.Browser())
	assert.Equal(t, 20*time.Second, s.Timeout())

	// Embedded defaults cover keys the file omits.
	assert.Equal(t, "https://dev-dash.janitri.in/", s.BaseURL())

	// Environment beats the file tier.
	s.lookupEnv = func(name string) (string, bool) {
		if name == "QA_BROWSER" {
			return "edge", true
		}
		return "", false
	}
	assert.Equal(t, "edge", s.Browser())
}

func TestFallbackWhenNoTierDefines(t *testing.T) {
	t.Parallel()

	s := New()
	s.lookupEnv = func(string) (string, bool) { return "", false }
	s.embedded = map[string]string{}

	assert.Equal(t, "chrome", s.Browser())
	assert.Equal(t, 10*time.Second, s.Timeout())
	assert.False(t, s.Headless())
	assert.True(t, s.ScreenshotOnFailure())
	assert.Equal(t, "https://dev-dash.janitri.in/", s.BaseURL())
}

func TestTypedAccessorsRejectGarbage(t *testing.T) {
	t.Parallel()

	path := writeProps(t, "timeout=soon\nheadless=maybe\n")
	s := Load(path)
	s.lookupEnv = func(string) (string, bool) { return "", false }

	assert.Equal(t, 10*time.Second, s.Timeout())
	assert.False(t, s.Headless())
	assert.Equal(t, 7, s.GetInt("timeout", 7))
}

func TestParseProperties(t *testing.T) {
	t.Parallel()

	props := parseProperties("# comment\n! also comment\n\nkey = value with spaces \nnoequals\n=empty\n")
	assert.Equal(t, map[string]string{"key": "value with spaces"}, props)
}

func TestGetDurationNegative(t *testing.T) {
	t.Parallel()

	path := writeProps(t, "timeout=-5\n")
	s := Load(path)
	s.lookupEnv = func(string) (string, bool) { return "", false }

	assert.Equal(t, 10*time.Second, s.Timeout())
}

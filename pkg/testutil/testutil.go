// Package testutil holds helpers shared across the package tests.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Logger returns a logger that routes through the test log, so output
// only shows up for failing tests.
func Logger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t testing.TB }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// FailingWriter rejects every write with Err after AllowBytes bytes
// have been accepted. Used to exercise write-failure paths.
type FailingWriter struct {
	Err        error
	AllowBytes int

	written int
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.AllowBytes {
		n := w.AllowBytes - w.written
		if n < 0 {
			n = 0
		}
		w.written = w.AllowBytes
		return n, w.Err
	}
	w.written += len(p)
	return len(p), nil
}

// TempProperties writes props as a properties file under a temp dir
// and returns its path. Keys are sorted so the file is stable.
func TempProperties(t testing.TB, props map[string]string) string {
	t.Helper()

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(props[k])
		b.WriteString("\n")
	}

	path := filepath.Join(t.TempDir(), "test.properties")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write properties: %v", err)
	}
	return path
}

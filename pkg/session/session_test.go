package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/testutil"
)

func TestParseEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Engine
		wantErr bool
	}{
		{"chrome", EngineChromium, false},
		{"Chromium", EngineChromium, false},
		{"firefox", EngineFirefox, false},
		{"gecko", EngineFirefox, false},
		{"edge", EngineEdge, false},
		{"msedge", EngineEdge, false},
		{"safari", EngineWebKit, false},
		{"webkit", EngineWebKit, false},
		{" chrome ", EngineChromium, false},
		{"opera", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseEngine(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeviceCatalog(t *testing.T) {
	t.Parallel()

	devices, err := Devices()
	require.NoError(t, err)
	assert.NotEmpty(t, devices)

	iphone, err := LookupDevice("iphone x")
	require.NoError(t, err)
	assert.Equal(t, 375, iphone.Width)
	assert.Equal(t, 812, iphone.Height)
	assert.True(t, iphone.IsMobile)
	assert.Contains(t, iphone.UserAgent, "iPhone")

	_, err = LookupDevice("Nokia 3310")
	assert.Error(t, err)
}

func TestDeviceFromConfig(t *testing.T) {
	t.Parallel()

	off := config.Load(testutil.TempProperties(t, map[string]string{
		"emulateDevice": "false",
	}))
	d, err := deviceFromConfig(off)
	require.NoError(t, err)
	assert.Nil(t, d)

	named := config.Load(testutil.TempProperties(t, map[string]string{
		"emulateDevice": "true",
		"deviceName":    "Pixel 5",
	}))
	d, err = deviceFromConfig(named)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Pixel 5", d.Name)

	// Emulation on with no name falls back to the iPhone X profile.
	unnamed := config.Load(testutil.TempProperties(t, map[string]string{
		"emulateDevice": "true",
	}))
	d, err = deviceFromConfig(unnamed)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "iPhone X", d.Name)

	unknown := config.Load(testutil.TempProperties(t, map[string]string{
		"emulateDevice": "true",
		"deviceName":    "Nokia 3310",
	}))
	_, err = deviceFromConfig(unknown)
	assert.Error(t, err)
}

func TestCreationErrorUnwraps(t *testing.T) {
	t.Parallel()

	underlying := errors.New("driver gone")
	err := &CreationError{Engine: EngineFirefox, Err: underlying}
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "firefox")
}

func TestConsumeDialog(t *testing.T) {
	t.Parallel()

	s := &Session{}
	msg, saw := s.ConsumeDialog()
	assert.False(t, saw)
	assert.Empty(t, msg)

	s.mu.Lock()
	s.lastDialog = "XSS"
	s.sawDialog = true
	s.mu.Unlock()

	msg, saw = s.ConsumeDialog()
	assert.True(t, saw)
	assert.Equal(t, "XSS", msg)

	// Consuming clears the recorded dialog.
	_, saw = s.ConsumeDialog()
	assert.False(t, saw)
}

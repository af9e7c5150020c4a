package interact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChandanKT-git/QA-Janitri/pkg/config"
	"github.com/ChandanKT-git/QA-Janitri/pkg/retry"
	"github.com/ChandanKT-git/QA-Janitri/pkg/testutil"
)

var fastRetry = retry.Config{MaxAttempts: 3}

func TestSafeClickTransientThenSuccess(t *testing.T) {
	t.Parallel()

	directCalls, scriptCalls := 0, 0
	direct := func() error {
		directCalls++
		if directCalls <= 2 {
			return errors.New("element is not stable")
		}
		return nil
	}
	script := func() error {
		scriptCalls++
		return nil
	}

	err := safeClick(context.Background(), fastRetry, direct, script, IsTransientClickError)
	require.NoError(t, err)
	assert.Equal(t, 3, directCalls)
	assert.Zero(t, scriptCalls, "script fallback must not run when direct succeeds")
}

func TestSafeClickNonTransientFallsBack(t *testing.T) {
	t.Parallel()

	directCalls, scriptCalls := 0, 0
	direct := func() error {
		directCalls++
		return errors.New("permission denied")
	}
	script := func() error {
		scriptCalls++
		return nil
	}

	err := safeClick(context.Background(), fastRetry, direct, script, IsTransientClickError)
	require.NoError(t, err)
	assert.Equal(t, 1, directCalls, "non-transient error must not retry the direct path")
	assert.Equal(t, 1, scriptCalls)
}

func TestSafeClickExhaustedThenFallback(t *testing.T) {
	t.Parallel()

	directCalls := 0
	direct := func() error {
		directCalls++
		return errors.New("intercepts pointer events")
	}
	script := func() error { return nil }

	err := safeClick(context.Background(), fastRetry, direct, script, IsTransientClickError)
	require.NoError(t, err)
	assert.Equal(t, 3, directCalls)
}

func TestSafeClickBothPathsFail(t *testing.T) {
	t.Parallel()

	scriptErr := errors.New("script rejected")
	direct := func() error { return errors.New("detached") }
	script := func() error { return scriptErr }

	err := safeClick(context.Background(), fastRetry, direct, script, IsTransientClickError)
	require.Error(t, err)
	assert.ErrorIs(t, err, scriptErr)
	// Callers distinguish interaction failures from timeouts.
	assert.ErrorIs(t, err, ErrInteraction)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestSafeClickCancellationSkipsFallback(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scriptCalls := 0
	err := safeClick(ctx, fastRetry,
		func() error { return errors.New("timeout") },
		func() error { scriptCalls++; return nil },
		IsTransientClickError)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, scriptCalls)
}

func TestIsTransientClickError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTransientClickError(errors.New("element intercepts pointer events")))
	assert.True(t, IsTransientClickError(errors.New("Timeout 10000ms exceeded")))
	assert.False(t, IsTransientClickError(errors.New("no such element")))
	assert.False(t, IsTransientClickError(nil))
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Login_Test_1", sanitizeName("Login Test/1"))
	assert.Equal(t, "screenshot", sanitizeName(""))
}

func TestMeetsPerformanceThreshold(t *testing.T) {
	t.Parallel()

	cfg := config.Load(testutil.TempProperties(t, map[string]string{
		"performanceThreshold": "1000",
	}))

	assert.True(t, MeetsPerformanceThreshold(cfg, 999*time.Millisecond))
	assert.True(t, MeetsPerformanceThreshold(cfg, time.Second))
	assert.False(t, MeetsPerformanceThreshold(cfg, 1001*time.Millisecond))

	// Default budget applies when the key is absent.
	bare := config.Load(testutil.TempProperties(t, map[string]string{}))
	assert.True(t, MeetsPerformanceThreshold(bare, 5*time.Second))
	assert.False(t, MeetsPerformanceThreshold(bare, 6*time.Second))
}

func TestRandomHelpers(t *testing.T) {
	t.Parallel()

	s := RandomString(12)
	assert.Len(t, s, 12)

	email := RandomEmail()
	assert.Contains(t, email, "@example.com")

	phone := RandomPhone()
	assert.Len(t, phone, 10)
	assert.Equal(t, byte('9'), phone[0])
}

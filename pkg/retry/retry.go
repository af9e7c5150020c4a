// Package retry provides a bounded retry engine with pluggable backoff
// used by the interaction toolkit's click state machine and the
// payload probes.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Strategy selects how the delay grows between attempts.
type Strategy int

const (
	// StrategyConstant waits the same delay every time.
	StrategyConstant Strategy = iota
	// StrategyLinear multiplies the base delay by the attempt number.
	StrategyLinear
	// StrategyExponential doubles the delay each attempt.
	StrategyExponential
)

// Config controls a retry loop.
type Config struct {
	// MaxAttempts bounds the total number of tries, including the first.
	MaxAttempts int
	// Delay is the base wait between attempts.
	Delay time.Duration
	// MaxDelay caps the computed delay. Zero means uncapped.
	MaxDelay time.Duration
	// Strategy selects the backoff curve.
	Strategy Strategy
}

// DefaultConfig retries three times with a constant 200ms pause.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Delay:       200 * time.Millisecond,
		Strategy:    StrategyConstant,
	}
}

// StopError wraps an error that should end the loop immediately.
type StopError struct {
	Err error
}

func (e *StopError) Error() string { return e.Err.Error() }

func (e *StopError) Unwrap() error { return e.Err }

// Stop marks err as permanent so Do returns it without further attempts.
func Stop(err error) error {
	return &StopError{Err: err}
}

// sleeper abstracts time.Sleep so tests can run without waiting.
type sleeper func(ctx context.Context, d time.Duration) error

func realSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn until it succeeds, returns a StopError, the attempts are
// exhausted, or ctx is canceled. The attempt argument is 1-based.
func Do(ctx context.Context, cfg Config, fn func(attempt int) error) error {
	return doWithSleeper(ctx, cfg, fn, realSleep)
}

func doWithSleeper(ctx context.Context, cfg Config, fn func(attempt int) error, sleep sleeper) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		var stop *StopError
		if errors.As(lastErr, &stop) {
			return stop.Err
		}
		if attempt < cfg.MaxAttempts {
			if err := sleep(ctx, cfg.CalcDelay(attempt)); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("retry: %d attempts exhausted: %w", cfg.MaxAttempts, lastErr)
}

// CalcDelay returns the wait after the given 1-based attempt.
func (c Config) CalcDelay(attempt int) time.Duration {
	var d time.Duration
	switch c.Strategy {
	case StrategyLinear:
		d = c.Delay * time.Duration(attempt)
	case StrategyExponential:
		d = c.Delay << (attempt - 1)
	default:
		d = c.Delay
	}
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

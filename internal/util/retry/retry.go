// Package retry provides bounded exponential-backoff execution of operations
// against eventually-consistent cloud APIs.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config controls the backoff schedule.
type Config struct {
	Attempts     int           // total attempts, including the first
	InitialDelay time.Duration // delay before the second attempt
	MaxDelay     time.Duration // ceiling for the growing delay
	Factor       float64       // delay multiplier between attempts
}

// Option adjusts the backoff schedule.
type Option func(*Config)

// Do runs op until it succeeds, the attempt budget is exhausted, or the
// context is cancelled. The delay between attempts grows by Factor up to
// MaxDelay. Errors marked with Permanent are returned without further
// attempts.
func Do(ctx context.Context, op func() error, opts ...Option) error {
	cfg := &Config{
		Attempts:     5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Factor:       2.0,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := op(); err == nil {
			return nil
		} else {
			lastErr = err
			if IsPermanent(err) {
				return fmt.Errorf("permanent error on attempt %d: %w", attempt, err)
			}
		}

		if attempt == cfg.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Factor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("gave up after %d attempts: %w", cfg.Attempts, lastErr)
}

// WithAttempts sets the total number of attempts.
func WithAttempts(n int) Option {
	return func(c *Config) { c.Attempts = n }
}

// WithInitialDelay sets the delay before the second attempt.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) { c.InitialDelay = d }
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) { c.MaxDelay = d }
}

// WithFactor sets the delay multiplier between attempts.
func WithFactor(f float64) Option {
	return func(c *Config) { c.Factor = f }
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as not worth retrying, e.g. a quota rejection
// or a name collision with a resource owned by someone else.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

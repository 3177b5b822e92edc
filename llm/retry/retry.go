/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry retries transient model backend failures with exponential
// backoff and jitter.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config bounds how often and how long a call is retried.
type Config struct {
	// MaxRetries is the number of retries after the first attempt. 0 disables retrying.
	MaxRetries int `env:"MAX_RETRIES,default=3"`
	// BaseBackoff is the wait before the first retry; it doubles per attempt.
	BaseBackoff time.Duration `env:"BASE_BACKOFF,default=1s"`
	// MaxBackoff caps the doubled wait.
	MaxBackoff time.Duration `env:"MAX_BACKOFF,default=30s"`
	// MaxJitter is the upper bound of the random delay added to each wait.
	MaxJitter time.Duration `env:"MAX_JITTER,default=500ms"`
}

// Validate checks that the configuration has usable values.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// Default returns the configuration used when none is supplied.
func Default() Config {
	return Config{
		MaxRetries:  3,
		BaseBackoff: 1 * time.Second,
		MaxBackoff:  30 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// None returns a configuration that makes a single attempt.
func None() Config {
	return Config{}
}

// Do calls fn until it succeeds, returns an error isRetryable rejects, the
// retry budget runs out or ctx is done.
func Do[T any](ctx context.Context, cfg Config, operation string, isRetryable func(error) bool, fn func(context.Context) (T, error)) (T, error) {
	var (
		out     T
		lastErr error
	)

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		out, lastErr = fn(ctx)
		if lastErr == nil {
			return out, nil
		}
		if !isRetryable(lastErr) {
			return out, lastErr
		}
		if attempt >= cfg.MaxRetries {
			break
		}

		wait := backoff(cfg, attempt)
		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", cfg.MaxRetries).
			With("backoff", wait).
			With("error", lastErr.Error()).
			Warn("Transient backend error, retrying")

		select {
		case <-ctx.Done():
			return out, ctx.Err()
		case <-time.After(wait):
		}
	}

	if cfg.MaxRetries == 0 {
		return out, lastErr
	}
	return out, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, lastErr)
}

// backoff returns BaseBackoff * 2^attempt capped at MaxBackoff, plus jitter.
func backoff(cfg Config, attempt int) time.Duration {
	wait := cfg.BaseBackoff
	for range attempt {
		if wait > cfg.MaxBackoff/2 {
			wait = cfg.MaxBackoff
			break
		}
		wait *= 2
	}
	wait = min(wait, cfg.MaxBackoff)
	if cfg.MaxJitter > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(int64(cfg.MaxJitter))); err == nil {
			wait += time.Duration(n.Int64())
		}
	}
	return wait
}

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/cefrassess/llm/retry"
	"chainguard.dev/cefrassess/metrics"
	"github.com/chainguard-dev/clog"
)

// Client turns a prompt into completion text.
//
// Implementations must return transport failures as errors wrapping
// ErrUnavailable or ErrAuth and must not swallow them.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Completion is the outcome of an asynchronous Generate.
type Completion struct {
	Text string
	Err  error
}

// GenerateAsync runs c.Generate in a goroutine. The returned channel yields
// exactly one Completion and is then closed.
func GenerateAsync(ctx context.Context, c Client, prompt string) <-chan Completion {
	ch := make(chan Completion, 1)
	go func() {
		defer close(ch)
		text, err := c.Generate(ctx, prompt)
		ch <- Completion{Text: text, Err: err}
	}()
	return ch
}

// reply is what a transport returns for one completion request.
type reply struct {
	text             string
	promptTokens     int64
	completionTokens int64
}

// transport is one member of the closed set of backends.
type transport interface {
	complete(ctx context.Context, prompt string) (reply, error)
}

// Option configures a client returned by New.
type Option func(*client) error

// WithMetrics records token usage and request outcomes on m.
func WithMetrics(m *metrics.GenAI) Option {
	return func(c *client) error {
		if m == nil {
			return fmt.Errorf("%w: metrics cannot be nil", ErrConfig)
		}
		c.metrics = m
		return nil
	}
}

type client struct {
	provider  Provider
	model     string
	timeout   time.Duration
	retry     retry.Config
	reasoning bool
	strip     bool
	transport transport
	metrics   *metrics.GenAI
}

var _ Client = (*client)(nil)

// New validates cfg and constructs the selected backend. Configuration
// problems are returned as ErrConfig; New never falls back to another
// provider.
func New(ctx context.Context, cfg Config, opts ...Option) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		t   transport
		err error
	)
	switch cfg.Provider {
	case OpenAI:
		t = newOpenAI(cfg)
	case Anthropic:
		t = newAnthropic(ctx, cfg)
	case Gemini:
		t, err = newGemini(ctx, cfg)
	case HTTP:
		t = newHTTP(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return newClient(cfg, t, opts...)
}

func newClient(cfg Config, t transport, opts ...Option) (*client, error) {
	c := &client{
		provider:  cfg.Provider,
		model:     cfg.Model,
		timeout:   cfg.timeout(),
		retry:     cfg.Retry,
		reasoning: cfg.Reasoning,
		strip:     cfg.Reasoning || cfg.StripThinking,
		transport: t,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Generate sends prompt to the backend. Each attempt is bounded by the
// configured timeout and transient failures are retried.
func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	log := clog.FromContext(ctx).With("provider", string(c.provider)).With("model", c.model)

	if c.reasoning {
		prompt += ReasoningSuffix
	}

	start := time.Now()
	r, err := retry.Do(ctx, c.retry, "generate", isTransient, func(ctx context.Context) (reply, error) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.transport.complete(ctx, prompt)
	})
	err = classify(err)

	if c.metrics != nil {
		c.metrics.RecordRequest(ctx, string(c.provider), c.model, outcome(err))
		if err == nil {
			c.metrics.RecordTokens(ctx, string(c.provider), c.model, r.promptTokens, r.completionTokens)
		}
	}
	if err != nil {
		log.With("error", err.Error()).Warn("Model call failed")
		return "", err
	}

	log.With("elapsed", time.Since(start)).
		With("prompt_tokens", r.promptTokens).
		With("completion_tokens", r.completionTokens).
		Debugf("Model call completed")

	text := r.text
	if c.strip {
		text = StripThinking(text)
	}
	return text, nil
}

const thinkClose = "</think>"

// StripThinking removes a reasoning preamble: everything up to and including
// the last </think>. Text without the marker is returned trimmed.
func StripThinking(text string) string {
	if i := strings.LastIndex(text, thinkClose); i >= 0 {
		text = text[i+len(thinkClose):]
	}
	return strings.TrimSpace(text)
}

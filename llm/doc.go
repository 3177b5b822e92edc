/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package llm provides a single text completion interface over the model
// backends used for assessment: OpenAI (and OpenAI compatible servers),
// Anthropic, Gemini, and a generic chat completion endpoint over HTTP.
//
// A Client is built from a Config, which is typically loaded from the
// environment:
//
//	var cfg llm.Config
//	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
//		Target:   &cfg,
//		Lookuper: envconfig.PrefixLookuper("LLM_", envconfig.OsLookuper()),
//	}); err != nil {
//		return err
//	}
//	client, err := llm.New(ctx, cfg, llm.WithMetrics(genai))
//
// Every call is bounded by Config.Timeout and transient failures (rate
// limits, 5xx replies and network errors) are retried per Config.Retry.
// Failures that remain are returned wrapping ErrUnavailable or ErrAuth.
package llm

/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/vertex"
)

type anthropicTransport struct {
	client   anthropic.Client
	model    string
	system   string
	sampling Sampling
}

func newAnthropic(ctx context.Context, cfg Config) *anthropicTransport {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.Project != "" {
		opts = append(opts, vertex.WithGoogleAuth(ctx, cfg.Region, cfg.Project))
	} else {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &anthropicTransport{
		client:   anthropic.NewClient(opts...),
		model:    cfg.Model,
		system:   cfg.systemPrompt(),
		sampling: cfg.Sampling(),
	}
}

func (t *anthropicTransport) complete(ctx context.Context, prompt string) (reply, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(t.model),
		MaxTokens:   t.sampling.MaxTokens,
		Temperature: anthropic.Float(t.sampling.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if t.system != "" {
		params.System = []anthropic.TextBlockParam{{Text: t.system}}
	}

	msg, err := t.client.Messages.New(ctx, params)
	if err != nil {
		return reply{}, err
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return reply{}, errors.New("message contained no text blocks")
	}
	return reply{
		text:             text.String(),
		promptTokens:     msg.Usage.InputTokens,
		completionTokens: msg.Usage.OutputTokens,
	}, nil
}

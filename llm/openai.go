/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiTransport struct {
	client   openai.Client
	model    string
	system   string
	sampling Sampling
}

func newOpenAI(cfg Config) *openaiTransport {
	opts := []option.RequestOption{
		// Retries are handled by Generate so they share one budget across providers.
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openaiTransport{
		client:   openai.NewClient(opts...),
		model:    cfg.Model,
		system:   cfg.systemPrompt(),
		sampling: cfg.Sampling(),
	}
}

func (t *openaiTransport) complete(ctx context.Context, prompt string) (reply, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if t.system != "" {
		messages = append(messages, openai.SystemMessage(t.system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:            t.model,
		Messages:         messages,
		Temperature:      openai.Float(t.sampling.Temperature),
		MaxTokens:        openai.Int(t.sampling.MaxTokens),
		TopP:             openai.Float(t.sampling.TopP),
		FrequencyPenalty: openai.Float(t.sampling.FrequencyPenalty),
		PresencePenalty:  openai.Float(t.sampling.PresencePenalty),
	})
	if err != nil {
		return reply{}, err
	}
	if len(resp.Choices) == 0 {
		return reply{}, errors.New("completion contained no choices")
	}
	return reply{
		text:             resp.Choices[0].Message.Content,
		promptTokens:     resp.Usage.PromptTokens,
		completionTokens: resp.Usage.CompletionTokens,
	}, nil
}
